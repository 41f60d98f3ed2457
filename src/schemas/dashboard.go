package schemas

import "github.com/shopspring/decimal"

type DashboardStats struct {
	TotalAssets    int             `json:"totalAssets"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	UnreadMessages int64           `json:"unreadMessages"`
	PendingReports int64           `json:"pendingReports"`
	RecentActivity []Activity      `json:"recentActivities"`
}

type Activity struct {
	ID      int64  `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
	Time    string `json:"time"`
}
