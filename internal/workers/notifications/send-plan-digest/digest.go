// internal/workers/notifications/send-plan-digest/digest.go
package sendplandigest

import (
	"bytes"
	"fmt"
	"text/template"

	"bizcoach-workers/internal/models"
)

type digestData struct {
	Name         string
	WeekStart    string
	Tasks        []models.PlanTask
	Remaining    int
	OverallScore *int
}

var (
	subjectTemplate = template.Must(template.New("subject").Parse(
		`Your action plan for the week of {{.WeekStart}}`))

	bodyTemplate = template.Must(template.New("body").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).Parse(
		`Hi {{if .Name}}{{.Name}}{{else}}there{{end}},
{{if .OverallScore}}
Your business health score is {{.OverallScore}}/100.
{{end}}
Here is what to focus on this week:
{{range $i, $t := .Tasks}}
{{inc $i}}. [{{$t.Category}}] {{$t.Title}}{{end}}
{{if .Remaining}}
...and {{.Remaining}} more in your dashboard.
{{end}}`))
)

// renderDigest returns the email subject, email body and the SMS text.
func renderDigest(input *Input, maxTasks int) (string, string, string, error) {
	tasks := input.Tasks
	remaining := 0
	if maxTasks > 0 && len(tasks) > maxTasks {
		remaining = len(tasks) - maxTasks
		tasks = tasks[:maxTasks]
	}

	data := digestData{
		Name:         input.Recipient.Name,
		WeekStart:    input.WeekStart,
		Tasks:        tasks,
		Remaining:    remaining,
		OverallScore: input.OverallScore,
	}

	var subject, body bytes.Buffer
	if err := subjectTemplate.Execute(&subject, data); err != nil {
		return "", "", "", fmt.Errorf("render subject: %w", err)
	}
	if err := bodyTemplate.Execute(&body, data); err != nil {
		return "", "", "", fmt.Errorf("render body: %w", err)
	}

	sms := fmt.Sprintf("Your plan for the week of %s has %d tasks.", input.WeekStart, len(input.Tasks))
	if len(input.Tasks) > 0 {
		sms += " Start with: " + input.Tasks[0].Title
	}
	return subject.String(), body.String(), sms, nil
}
