package http

type setDayRegionRequest struct {
	Day      int    `json:"day" validate:"min=0,max=6"`
	RegionID string `json:"region_id" validate:"omitempty,custom_id,max=100"`
}

type dayDoctorRequest struct {
	Day      int    `json:"day" validate:"min=0,max=6"`
	DoctorID string `json:"doctor_id" validate:"required,custom_id,min=1,max=100"`
}

type reviewPlanRequest struct {
	Action string `json:"action" validate:"required,oneof=approve reject"`
}

type recordVisitRequest struct {
	RepID     string `json:"rep_id" validate:"required,custom_id,min=1,max=100"`
	ClientID  string `json:"client_id" validate:"required,custom_id,min=1,max=100"`
	VisitedAt string `json:"visited_at" validate:"omitempty"`
}

type absenceRequest struct {
	RepID  string `json:"rep_id" validate:"required,custom_id,min=1,max=100"`
	Date   string `json:"date" validate:"required,date_key"`
	Reason string `json:"reason" validate:"required,min=2,max=255"`
}

type reviewAbsenceRequest struct {
	Approve bool `json:"approve"`
}

type saveSettingsRequest struct {
	Weekends []int    `json:"weekends" validate:"dive,min=0,max=6"`
	Holidays []string `json:"holidays" validate:"dive,date_key"`
}
