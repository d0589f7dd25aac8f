package domain

// Budget is a single expense line recorded against an event.
type Budget struct {
	ID          int64
	EventID     int64
	Description string
	Cost        *float64
}

// BudgetStatus compares an event's assigned budget with what has been spent.
type BudgetStatus struct {
	AssignedBudget float64
	TotalSpent     float64
	Difference     float64
}

// ComputeBudgetStatus sums item costs against the assigned amount. A nil
// assigned budget counts as zero and items without a cost are skipped.
func ComputeBudgetStatus(assigned *float64, items []Budget) BudgetStatus {
	status := BudgetStatus{}
	if assigned != nil {
		status.AssignedBudget = *assigned
	}
	for _, item := range items {
		if item.Cost == nil {
			continue
		}
		status.TotalSpent += *item.Cost
	}
	status.Difference = status.AssignedBudget - status.TotalSpent
	return status
}
