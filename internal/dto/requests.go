package dto

type OperatingHoursInput struct {
	Start    string `json:"start" binding:"omitempty,len=5"`
	End      string `json:"end" binding:"omitempty,len=5"`
	Timezone string `json:"timezone"`
}

type FeesInput struct {
	FlatFee       *float64 `json:"flat_fee" binding:"omitempty,gte=0"`
	PercentageFee *float64 `json:"percentage_fee" binding:"omitempty,gte=0,lte=1"`
	Currency      string   `json:"currency" binding:"omitempty,len=3"`
}

type LimitsInput struct {
	MinAmount *float64 `json:"min_amount" binding:"omitempty,gte=0"`
	MaxAmount *float64 `json:"max_amount" binding:"omitempty,gt=0"`
	Currency  string   `json:"currency" binding:"omitempty,len=3"`
}

type SaveSchemeRequest struct {
	Name            string               `json:"name" binding:"required,max=255"`
	Kind            string               `json:"kind" binding:"required,oneof=fiat crypto fx"`
	Currency        string               `json:"currency" binding:"required,len=3"`
	TargetCurrency  string               `json:"target_currency" binding:"omitempty,len=3"`
	CountryScope    string               `json:"country_scope"`
	AvailableDays   []string             `json:"available_days"`
	OperatingHours  *OperatingHoursInput `json:"operating_hours"`
	HolidayCalendar []string             `json:"holiday_calendar"`
	CutOffTime      string               `json:"cut_off_time" binding:"omitempty,len=5"`
	SettlementTime  string               `json:"settlement_time"`
	Fees            *FeesInput           `json:"fees"`
	Spread          *float64             `json:"spread" binding:"omitempty,gte=0,lte=1"`
	Limits          *LimitsInput         `json:"limits"`
	SupportsFx      *bool                `json:"supports_fx"`
}

type FeeQuoteRequest struct {
	Amount         float64 `json:"amount" binding:"required,gt=0"`
	SourceCurrency string  `json:"source_currency" binding:"omitempty,len=3"`
	TargetCurrency string  `json:"target_currency" binding:"omitempty,len=3"`
}

type CompatibilityRequest struct {
	SourceCurrency string  `json:"source_currency" binding:"required,len=3"`
	TargetCurrency string  `json:"target_currency" binding:"required,len=3"`
	Amount         float64 `json:"amount" binding:"required,gt=0"`
}
