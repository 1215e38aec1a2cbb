package converter

import (
	"customer-service/src/internal/entity"
	"customer-service/src/internal/model"
)

func WalletToResponse(w *entity.Wallet) *model.WalletResponse {
	return &model.WalletResponse{
		CustomerID:     w.CustomerID,
		Balance:        w.Balance,
		TotalDeposited: w.TotalDeposited,
		TotalSpent:     w.TotalSpent,
		TotalRewarded:  w.TotalRewarded,
		UpdatedAt:      w.UpdatedAt,
	}
}

func TransactionToResponse(t *entity.WalletTransaction) *model.TransactionResponse {
	return &model.TransactionResponse{
		ReferenceID:  t.ReferenceID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		Description:  t.Description,
		CreatedAt:    t.CreatedAt,
	}
}

func TransactionsToPage(entries []entity.WalletTransaction, page, size int, total int64) *model.TransactionPageResponse {
	items := make([]model.TransactionResponse, 0, len(entries))
	for i := range entries {
		items = append(items, *TransactionToResponse(&entries[i]))
	}
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return &model.TransactionPageResponse{
		Items: items,
		Paging: model.PageMetadata{
			Page:       page,
			Size:       size,
			TotalItem:  total,
			TotalPages: pages,
		},
	}
}

func TransactionToEvent(eventID string, t *entity.WalletTransaction) *model.WalletTransactionEvent {
	return &model.WalletTransactionEvent{
		EventID:      eventID,
		CustomerID:   t.CustomerID,
		ReferenceID:  t.ReferenceID,
		Type:         string(t.Type),
		Amount:       t.Amount,
		BalanceAfter: t.BalanceAfter,
		OccurredAt:   t.CreatedAt,
	}
}
