package consumer

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/chucky-1/cashflow/internal/producer"
	"github.com/chucky-1/cashflow/internal/repository"
	"github.com/chucky-1/cashflow/internal/service"
)

const (
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	homePath        = "/"
)

type receivableForm struct {
	Title   string `form:"title"`
	Amount  int64  `form:"amount"`
	DueDate string `form:"dueDate"`
}

type payableForm struct {
	Title  string `form:"title"`
	Amount int64  `form:"amount"`
}

type cashForm struct {
	Type   string `form:"type"`
	Amount int64  `form:"amount"`
}

// HTTP serves the home view, the mutation forms and the two secret-gated endpoints.
type HTTP struct {
	ledger   *service.Ledger
	auth     *service.Auth
	reminder producer.Reminder
	server   *http.Server
}

func NewHTTP(addr string, ledger *service.Ledger, auth *service.Auth, reminder producer.Reminder) *HTTP {
	h := &HTTP{
		ledger:   ledger,
		auth:     auth,
		reminder: reminder,
	}
	h.server = &http.Server{
		Addr:              addr,
		Handler:           h.routes(),
		ReadHeaderTimeout: requestTimeout,
	}
	return h
}

func (h *HTTP) Handler() http.Handler {
	return h.server.Handler
}

// Consume serves until ctx is cancelled, then shuts the server down.
func (h *HTTP) Consume(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("http consumer listening on %s", h.server.Addr)
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logrus.Infof("http consumer stopping: %v", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.server.Shutdown(shutdownCtx)
}

func (h *HTTP) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET(homePath, h.overview)
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/receivables", h.addReceivable)
	r.POST("/payables", h.addPayable)
	r.POST("/cash", h.updateCash)

	api := r.Group("/api")
	api.GET("/quick-add", h.quickAdd)
	api.GET("/cron/remind-shift", h.remindShift)
	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logrus.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start),
		}).Info("http request")
	}
}

func (h *HTTP) overview(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	overview, err := h.ledger.Overview(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *HTTP) addReceivable(c *gin.Context) {
	var form receivableForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	_, err := h.ledger.AddReceivable(ctx, service.ReceivableInput{
		Title:   form.Title,
		Amount:  form.Amount,
		DueDate: form.DueDate,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *HTTP) addPayable(c *gin.Context) {
	var form payableForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.ledger.AddPayable(ctx, service.PayableInput{Title: form.Title, Amount: form.Amount}); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *HTTP) updateCash(c *gin.Context) {
	var form cashForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, err := h.ledger.UpdateCash(ctx, service.CashInput{Direction: form.Type, Amount: form.Amount}); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *HTTP) quickAdd(c *gin.Context) {
	if err := h.auth.Check(c.Query("key")); err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if _, _, err := h.ledger.BookWage(ctx); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, homePath)
}

func (h *HTTP) remindShift(c *gin.Context) {
	if err := h.auth.CheckBearer(c.GetHeader("Authorization")); err != nil {
		h.fail(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.reminder.Send(ctx); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *HTTP) fail(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		logrus.Warnf("http consumer rejected %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.String(http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, repository.ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
	case errors.Is(err, producer.ErrWebhookNotConfigured):
		logrus.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook URL not set"})
	case errors.Is(err, producer.ErrDelivery):
		logrus.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send to Discord"})
	default:
		logrus.Errorf("http consumer %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
