package entity

type SourceStat struct {
	SourceID        int64  `json:"source_id" db:"source_id"`
	Name            string `json:"name" db:"name"`
	Prefix          string `json:"prefix" db:"prefix"`
	Customers       int64  `json:"customers" db:"customers"`
	ActiveCustomers int64  `json:"active_customers" db:"active_customers"`
	TotalCredited   int64  `json:"total_credited" db:"total_credited"`
}

type DashboardStat struct {
	TotalCustomers       int64 `json:"total_customers" db:"total_customers"`
	ActiveCustomers      int64 `json:"active_customers" db:"active_customers"`
	TrialCustomers       int64 `json:"trial_customers" db:"trial_customers"`
	RegistrationsLastDay int64 `json:"registrations_last_day" db:"registrations_last_day"`
	TotalBalance         int64 `json:"total_balance" db:"total_balance"`
	TotalDeposited       int64 `json:"total_deposited" db:"total_deposited"`
	TotalSpent           int64 `json:"total_spent" db:"total_spent"`
	TotalRewarded        int64 `json:"total_rewarded" db:"total_rewarded"`
	TotalTransactions    int64 `json:"total_transactions" db:"total_transactions"`
}
