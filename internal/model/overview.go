package model

type Risk string

const (
	RiskSafe    Risk = "safe"
	RiskWarning Risk = "warning"
	RiskDanger  Risk = "danger"
)

// Projection is the cash position now and on the cutoff date.
type Projection struct {
	Cutoff                  string `json:"cutoff"`
	TotalReceivables        int64  `json:"total_receivables"`
	TotalPayables           int64  `json:"total_payables"`
	CurrentDisposableIncome int64  `json:"current_disposable_income"`
	ReceivablesUntilCutoff  int64  `json:"receivables_until_cutoff"`
	PayablesUntilCutoff     int64  `json:"payables_until_cutoff"`
	ProjectedBalance        int64  `json:"projected_balance"`
	Risk                    Risk   `json:"risk"`
}

// Overview is everything the home view shows.
type Overview struct {
	Wallet      Wallet       `json:"wallet"`
	Receivables []Receivable `json:"receivables"`
	Payables    []Payable    `json:"payables"`
	Projection  Projection   `json:"projection"`
}

// Reminder is the chat notification asking to book a worked shift.
type Reminder struct {
	Title       string
	Description string
	Link        string
	Amount      int64
}
