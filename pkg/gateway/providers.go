package gateway

// Provider names accepted in requests.
const (
	NameStripe = "stripe"
	NamePaypal = "paypal"
)

// NewStripe creates the Stripe-backed gateway. 2.9% + $0.30 per transaction.
func NewStripe(baseURL, apiKey string) Gateway {
	return newRESTProvider(NameStripe, baseURL, apiKey, FeeSchedule{PercentBps: 290, FixedCents: 30})
}

// NewPaypal creates the PayPal-backed gateway. 3.49% + $0.49 per transaction.
func NewPaypal(baseURL, apiKey string) Gateway {
	return newRESTProvider(NamePaypal, baseURL, apiKey, FeeSchedule{PercentBps: 349, FixedCents: 49})
}
