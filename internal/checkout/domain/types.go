package domain

import "github.com/shopspring/decimal"

type QuoteLine struct {
	ProductID int64
	Name      string
	Size      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

type Quote struct {
	Lines []QuoteLine
	Total decimal.Decimal
}
