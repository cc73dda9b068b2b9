package validation

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

type signupPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Status   string `json:"rsvp_status" binding:"omitempty,rsvpstatus"`
	Date     string `json:"event_date" binding:"omitempty,eventdate"`
}

func TestToDetailsUsesJSONNamesAndAliases(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&signupPayload{
		Email:    "not-an-email",
		Password: "short",
		Status:   "going",
		Date:     "09/01/2025",
	})

	details := ToDetails(err)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be at least 8 characters and at most 72 bytes", details["password"])
	assert.Equal(t, "must be one of: attending, maybe, not_attending", details["rsvp_status"])
	assert.Equal(t, "must be a date formatted YYYY-MM-DD", details["event_date"])
}

func TestPasswordLimitCountsBytes(t *testing.T) {
	Init()

	ascii := signupPayload{Email: "a@b.edu", Password: strings.Repeat("a", 72)}
	assert.NoError(t, binding.Validator.ValidateStruct(&ascii))

	// 40 runes, 80 bytes
	accented := signupPayload{Email: "a@b.edu", Password: strings.Repeat("é", 40)}
	details := ToDetails(binding.Validator.ValidateStruct(&accented))
	assert.Equal(t, "must be at least 8 characters and at most 72 bytes", details["password"])
}

func TestToDetailsRequired(t *testing.T) {
	Init()
	details := ToDetails(binding.Validator.ValidateStruct(&signupPayload{}))
	assert.Equal(t, "is required", details["email"])
	assert.Equal(t, "is required", details["password"])
	assert.NotContains(t, details, "rsvp_status")
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte(`{"a":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
