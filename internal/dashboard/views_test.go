package dashboard

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiosk404/spycats/pkg/utils/json"
)

var roster = []Cat{
	{ID: "1", Name: "Agent Whiskers", Breed: "Siamese", YearsOfExperience: 5, Salary: 75000,
		CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
	{ID: "2", Name: "Shadow Paws", Breed: "Maine Coon", YearsOfExperience: 8, Salary: 95000,
		CreatedAt: time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)},
	{ID: "3", Name: "Midnight", Breed: "British Shorthair", YearsOfExperience: 3, Salary: 60000},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"1", "2", "3"}},
		{"shadow", []string{"2"}},
		{"SIAMESE", []string{"1"}},
		{"  mid ", []string{"3"}},
		{"a", []string{"1", "2", "3"}},
		{"sphynx", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(roster, tt.term)))
		})
	}
}

func TestComputeStats(t *testing.T) {
	s := ComputeStats(roster)
	assert.Equal(t, 3, s.Total)
	assert.True(t, decimal.NewFromInt(230000).Equal(s.Payroll), s.Payroll.String())
	assert.Equal(t, "$76,666.67", FormatCurrency(s.AverageSalary))
	assert.Equal(t, "5.3 years", FormatYears(s.AverageExperience))
	assert.Equal(t, 1, s.Junior)
	assert.Equal(t, 1, s.Mid)
	assert.Equal(t, 1, s.Senior)
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil)
	assert.Zero(t, s.Total)
	assert.Equal(t, "$0", FormatCurrency(s.Payroll))
	assert.Equal(t, "$0", FormatCurrency(s.AverageSalary))
	assert.Equal(t, "0.0 years", FormatYears(s.AverageExperience))
}

func TestExperienceBands(t *testing.T) {
	assert.Equal(t, "Junior", ExperienceLevel(0))
	assert.Equal(t, "Junior", ExperienceLevel(3))
	assert.Equal(t, "Mid", ExperienceLevel(4))
	assert.Equal(t, "Mid", ExperienceLevel(6))
	assert.Equal(t, "Senior", ExperienceLevel(7))
	assert.Equal(t, "Junior", ExperienceLevel(3.9))
	assert.Equal(t, "Mid", ExperienceLevel(6.5))

	assert.Equal(t, "5 years", FormatExperience(5))
	assert.Equal(t, "2.5 years", FormatExperience(2.5))
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{75000, "$75,000"},
		{75000.5, "$75,000.5"},
		{999.999, "$1,000"},
		{1234567.89, "$1,234,567.89"},
		{12, "$12"},
		{-1500, "-$1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSalary(tt.in))
	}
}

func TestExportCSV(t *testing.T) {
	cats := append([]Cat{}, roster...)
	cats[2].Name = `Midnight "The Ghost"`
	cats[2].YearsOfExperience = 3.5

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, cats))
	assert.Equal(t, `ID,Name,Breed,Years of Experience,Salary,Created At
1,"Agent Whiskers","Siamese",5,75000,"2024-01-15T10:30:00.000Z"
2,"Shadow Paws","Maine Coon",8,95000,"2024-01-16T09:00:00.000Z"
3,"Midnight ""The Ghost""","British Shorthair",3.5,60000,"N/A"`, buf.String())
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, roster[:1]))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Agent Whiskers", got[0]["name"])
	assert.EqualValues(t, 5, got[0]["years_of_experience"])
	assert.Contains(t, buf.String(), "\n  ")

	buf.Reset()
	require.NoError(t, ExportJSON(&buf, nil))
	assert.Equal(t, "[]", buf.String())
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, FormatCSV, nil))
	assert.Equal(t, "ID,Name,Breed,Years of Experience,Salary,Created At", buf.String())
	assert.Error(t, Export(&buf, "xml", nil))
}

func TestExportFileName(t *testing.T) {
	now := time.Date(2024, 1, 15, 23, 30, 0, 0, time.FixedZone("PST", -8*3600))
	assert.Equal(t, "spy-cats-2024-01-16.csv", ExportFileName(FormatCSV, now))
	assert.Equal(t, "spy-cats-2024-01-16.json", ExportFileName(FormatJSON, now))
}
