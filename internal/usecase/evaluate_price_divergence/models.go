package evaluate_price_divergence

// Request - запрос на проверку расхождения цены бронирования
type Request struct {
	BookingID int64
}

// Report - сравнение снапшота цены с текущими тарифами корта.
// Nil означает "цена отсутствует" (для снапшота - бронирование не было
// тарифицировано, для новой цены - тариф для этого времени снят).
type Report struct {
	BookingID        int64
	OldComputedPrice *float64
	NewComputedPrice *float64
	NegotiatedPrice  *float64
	HasDivergence    bool
}
