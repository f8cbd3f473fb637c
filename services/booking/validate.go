package booking

import (
	"strings"
	"time"
	"unicode/utf8"

	"karigar/models"
	"karigar/utils"
)

func validateCreate(req *models.CreateBookingRequest) error {
	req.ServiceProviderID = strings.TrimSpace(req.ServiceProviderID)
	req.ServiceType = strings.TrimSpace(req.ServiceType)
	req.Description = strings.TrimSpace(req.Description)

	var missing []string
	if req.ServiceProviderID == "" {
		missing = append(missing, "serviceProviderId")
	}
	if req.ServiceType == "" {
		missing = append(missing, "serviceType")
	}
	if strings.TrimSpace(req.Address.Street) == "" {
		missing = append(missing, "address.street")
	}
	if strings.TrimSpace(req.Address.City) == "" {
		missing = append(missing, "address.city")
	}
	if req.Schedule.Date == "" {
		missing = append(missing, "schedule.date")
	}
	if req.Schedule.TimeSlot.Start == "" || req.Schedule.TimeSlot.End == "" {
		missing = append(missing, "schedule.timeSlot")
	}
	if len(missing) > 0 {
		return utils.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	if utf8.RuneCountInString(req.Description) > MaxDescriptionLength {
		return utils.NewValidationError("description must be at most %d characters", MaxDescriptionLength)
	}
	if len(req.Attachments) > MaxAttachments {
		return utils.NewValidationError("at most %d attachments are allowed", MaxAttachments)
	}
	for _, a := range req.Attachments {
		if strings.TrimSpace(a.URL) == "" {
			return utils.NewValidationError("attachment url is required")
		}
	}
	if err := validateSchedule(req.Schedule.Date, req.Schedule.TimeSlot); err != nil {
		return err
	}
	if req.Schedule.EstimatedHours < 0 {
		return utils.NewValidationError("schedule.estimatedHours must be positive")
	}
	if req.Schedule.EstimatedHours == 0 {
		req.Schedule.EstimatedHours = DefaultEstimatedHours
	}
	return nil
}

// validateSchedule checks a "YYYY-MM-DD" date and an "HH:MM" window whose end is after its start.
func validateSchedule(date string, slot models.TimeSlot) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return utils.NewValidationError("date must be in YYYY-MM-DD format")
	}
	start, err := time.Parse("15:04", slot.Start)
	if err != nil {
		return utils.NewValidationError("timeSlot.start must be in HH:MM format")
	}
	end, err := time.Parse("15:04", slot.End)
	if err != nil {
		return utils.NewValidationError("timeSlot.end must be in HH:MM format")
	}
	if !end.After(start) {
		return utils.NewValidationError("timeSlot.end must be after timeSlot.start")
	}
	return nil
}

func validateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", utils.NewValidationError("message is required")
	}
	if utf8.RuneCountInString(text) > MaxMessageLength {
		return "", utils.NewValidationError("message must be at most %d characters", MaxMessageLength)
	}
	return text, nil
}
