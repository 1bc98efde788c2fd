package planner

import "bizcoach-workers/internal/models"

// templateSet is an ordered task list; position is priority.
type templateSet struct {
	category string
	titles   []string
}

var revenueTemplates = templateSet{
	category: models.CategoryRevenue.String(),
	titles: []string{
		"Review last month's revenue by product line",
		"Identify the top three customers by lifetime value",
		"Launch a limited-time promotion for best-selling products",
		"Review pricing against two direct competitors",
		"Follow up on all open quotes older than 7 days",
		"Set up an upsell offer at checkout",
	},
}

var operationsTemplates = templateSet{
	category: models.CategoryOperations.String(),
	titles: []string{
		"Map the order fulfilment process end to end",
		"Identify the slowest step in fulfilment and time it",
		"Audit inventory levels for the top ten SKUs",
		"Automate one recurring manual report",
		"Renegotiate terms with your highest-cost supplier",
		"Document a standard operating procedure for onboarding staff",
		"Review open support tickets older than 48 hours",
	},
}

var customerTemplates = templateSet{
	category: models.CategoryCustomer.String(),
	titles: []string{
		"Send a satisfaction survey to recent customers",
		"Reply to every unanswered review",
		"Call three customers who have not ordered in 90 days",
		"Create a loyalty reward for repeat buyers",
		"Publish an FAQ covering the top five support questions",
	},
}

var defaultTemplates = templateSet{
	category: models.CategoryUnknown.String(),
	titles: []string{
		"Define a measurable weekly milestone for this goal",
		"Break the goal into three concrete deliverables",
		"Block two hours in the calendar for focused work",
		"Review progress and blockers at the end of the week",
		"Share the goal with one person for accountability",
	},
}

func templatesFor(c models.Category) templateSet {
	switch c {
	case models.CategoryRevenue:
		return revenueTemplates
	case models.CategoryOperations:
		return operationsTemplates
	case models.CategoryCustomer:
		return customerTemplates
	default:
		return defaultTemplates
	}
}
