package request

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
)

// timePeriodPattern is the "YYYY-MM" label used for monthly grouping.
var timePeriodPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type CreateContributionRequest struct {
	MemberRegNo string  `json:"member_reg_no"`
	ProjectName string  `json:"project_name"`
	TimePeriod  string  `json:"time_period"`
	Position    string  `json:"position"`
	Points      int     `json:"points"`
	Avenue      *string `json:"avenue"`
}

func (req *CreateContributionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MemberRegNo, validation.Required),
		validation.Field(&req.ProjectName, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.TimePeriod, validation.Required, validation.Match(timePeriodPattern)),
		validation.Field(&req.Position, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Points, validation.Min(0)),
	)
}
