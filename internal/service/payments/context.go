package payments

// PaymentContext держатель выбранной стратегии оплаты
type PaymentContext struct {
	strategy Strategy
}

// NewPaymentContext создает контекст без выбранной стратегии
func NewPaymentContext() *PaymentContext {
	return &PaymentContext{}
}

// SetStrategy выбирает стратегию оплаты
func (c *PaymentContext) SetStrategy(s Strategy) {
	c.strategy = s
}

// Execute проводит платёж через выбранную стратегию
// Возвращает ErrNoStrategySelected, если стратегия не выбрана
func (c *PaymentContext) Execute(amount float64) (bool, error) {
	if c.strategy == nil {
		return false, ErrNoStrategySelected
	}
	return c.strategy.Execute(amount), nil
}

// StrategyName название выбранной стратегии, "Unknown" если не выбрана
func (c *PaymentContext) StrategyName() string {
	if c.strategy == nil {
		return "Unknown"
	}
	return c.strategy.Name()
}
