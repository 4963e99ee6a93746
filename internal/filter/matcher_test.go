package filter

import (
	"testing"

	"go-jobradar/internal/remoteok"

	"github.com/stretchr/testify/assert"
)

var (
	includeKeywords = []string{"automation", "n8n", "python", "operations", "coordinator", "associate", "entry level"}
	excludeKeywords = []string{"customer service", "sales", "senior", "lead", "director", "manager", "principal"}
)

func TestCriteriaMatches(t *testing.T) {
	tests := []struct {
		name string
		job  remoteok.Job
		want bool
	}{
		{
			name: "include hit in title",
			job:  remoteok.Job{Position: "Automation Associate"},
			want: true,
		},
		{
			name: "exclude keyword rejects",
			job:  remoteok.Job{Position: "Senior Automation Engineer"},
			want: false,
		},
		{
			name: "no include keyword",
			job:  remoteok.Job{Position: "Graphic Designer", Description: "Figma all day"},
			want: false,
		},
		{
			name: "include hit in tags only",
			job:  remoteok.Job{Position: "Workflow Builder", Tags: []string{"n8n", "zapier"}},
			want: true,
		},
		{
			name: "include hit in description",
			job:  remoteok.Job{Position: "Generalist", Description: "You will own internal operations tooling"},
			want: true,
		},
		{
			name: "exclude hit in company",
			job:  remoteok.Job{Position: "Automation Engineer", Company: "Sales Robots Inc"},
			want: false,
		},
		{
			name: "case insensitive",
			job:  remoteok.Job{Position: "PYTHON Developer"},
			want: true,
		},
		{
			name: "accent folded exclude",
			job:  remoteok.Job{Position: "Sénior Python Developer"},
			want: false,
		},
		{
			name: "substring exclude inside larger word",
			job:  remoteok.Job{Position: "Automation Team Leader"},
			want: false,
		},
	}

	c := NewCriteria(includeKeywords, excludeKeywords, false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Matches(tt.job))
		})
	}
}

func TestCriteriaMustBeRemote(t *testing.T) {
	c := NewCriteria(includeKeywords, nil, true)

	assert.False(t, c.Matches(remoteok.Job{Position: "Automation Associate", Remote: false}))
	assert.True(t, c.Matches(remoteok.Job{Position: "Automation Associate", Remote: true}))
}
