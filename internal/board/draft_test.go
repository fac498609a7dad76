package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lutfiEmre/todolist/internal/task/models"
)

func validDraft() Draft {
	return Draft{
		Category:       "Work",
		Name:           "Quarterly report",
		SuccessPercent: models.Ptr(0),
		Importance:     models.Ptr(5),
		TimelineDays:   models.Ptr(1),
	}
}

func TestDraft_Valid(t *testing.T) {
	assert.NoError(t, validDraft().Validate())
	assert.True(t, validDraft().Valid())
}

func TestDraft_Rules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"blank category", func(d *Draft) { d.Category = "   " }, "category"},
		{"blank name", func(d *Draft) { d.Name = "" }, "name"},
		{"missing percent", func(d *Draft) { d.SuccessPercent = nil }, "successPercent"},
		{"percent over", func(d *Draft) { d.SuccessPercent = models.Ptr(101) }, "successPercent"},
		{"percent under", func(d *Draft) { d.SuccessPercent = models.Ptr(-1) }, "successPercent"},
		{"importance zero", func(d *Draft) { d.Importance = models.Ptr(0) }, "importance"},
		{"importance six", func(d *Draft) { d.Importance = models.Ptr(6) }, "importance"},
		{"missing importance", func(d *Draft) { d.Importance = nil }, "importance"},
		{"timeline zero", func(d *Draft) { d.TimelineDays = models.Ptr(0) }, "timeline"},
		{"missing timeline", func(d *Draft) { d.TimelineDays = nil }, "timeline"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			err := d.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
			assert.False(t, d.Valid())
		})
	}
}

func TestDraft_ReportsEveryBrokenRule(t *testing.T) {
	err := Draft{}.Validate()
	require.Error(t, err)
	for _, field := range []string{"category", "name", "successPercent", "importance", "timeline"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestDraft_ToTask(t *testing.T) {
	d := validDraft()
	d.TimelineDays = models.Ptr(6)
	task := d.ToTask(1700000000000, models.StatusInReview)

	assert.Equal(t, models.Task{
		ID:             1700000000000,
		Category:       "Work",
		Name:           "Quarterly report",
		SuccessPercent: 0,
		Importance:     5,
		Timeline:       "6 days",
		Status:         models.StatusInReview,
		Order:          0,
	}, task)
}

func TestParseDraftInput(t *testing.T) {
	d := ParseDraftInput("Home", "Paint fence", " 40 ", "2", "3", "buy paint first")
	require.True(t, d.Valid())
	assert.Equal(t, 40, *d.SuccessPercent)
	assert.Equal(t, "buy paint first", d.InitialComment)

	d = ParseDraftInput("Home", "Paint fence", "forty", "2.5", "", "")
	assert.Nil(t, d.SuccessPercent)
	assert.Nil(t, d.Importance)
	assert.Nil(t, d.TimelineDays)
	assert.False(t, d.Valid())
}
