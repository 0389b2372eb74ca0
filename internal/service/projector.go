package service

import (
	"github.com/chucky-1/cashflow/internal/model"
)

// Project computes the cash position from outstanding items. Totals cover every
// item; the projected balance only counts items due on or before cutoff and
// leaves the safety buffer out, which is used for the risk only.
func Project(wallet model.Wallet, receivables []model.Receivable, payables []model.Payable, cutoff string) model.Projection {
	p := model.Projection{Cutoff: cutoff}

	for _, r := range receivables {
		item := r.Item()
		p.TotalReceivables += item.Amount
		if item.DueDate <= cutoff {
			p.ReceivablesUntilCutoff += item.Amount
		}
	}
	for _, pb := range payables {
		item := pb.Item()
		p.TotalPayables += item.Amount
		if item.DueDate <= cutoff {
			p.PayablesUntilCutoff += item.Amount
		}
	}

	p.CurrentDisposableIncome = wallet.CurrentCash + p.TotalReceivables - p.TotalPayables - wallet.SafetyBuffer
	p.ProjectedBalance = wallet.CurrentCash + p.ReceivablesUntilCutoff - p.PayablesUntilCutoff
	p.Risk = classify(p.ProjectedBalance, wallet.SafetyBuffer)
	return p
}

func classify(balance, buffer int64) model.Risk {
	switch {
	case balance < 0:
		return model.RiskDanger
	case balance >= buffer:
		return model.RiskSafe
	default:
		return model.RiskWarning
	}
}
