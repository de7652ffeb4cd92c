package collectapi

// Response represents the raw JSON response from the CollectAPI
// economy/hisseSenedi endpoint: a success flag plus one quote per listed
// stock, with Turkish field names preserved from the wire format.
type Response struct {
	Success bool         `json:"success"`
	Result  []StockQuote `json:"result"`
}

// StockQuote is one stock's quote as CollectAPI reports it.
//
// Fields:
//   - Code: BIST ticker code (e.g. "THYAO")
//   - Text: Company display name
//   - Lastprice: Last traded price
//   - Rate: Percent change on the day
//   - Hacim: Traded volume
//   - Min/Max: Day's low and high
//   - Time: Exchange-reported time label (e.g. "18:05")
//   - Icon: Company icon URL
type StockQuote struct {
	Code      string  `json:"code"`
	Text      string  `json:"text"`
	Lastprice float64 `json:"lastprice"`
	Rate      float64 `json:"rate"`
	Hacim     float64 `json:"hacim"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Time      string  `json:"time"`
	Icon      string  `json:"icon"`
}
