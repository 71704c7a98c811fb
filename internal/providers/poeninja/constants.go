package poeninja

const (
	providerName   = "poeninja"
	defaultBaseURL = "https://poe.ninja/api/data"
	currencyType   = "Currency"
)
