package alert

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/raids-lab/projecthub/pkg/config"
	"github.com/raids-lab/projecthub/pkg/logutils"
	"github.com/raids-lab/projecthub/pkg/metrics"
	"github.com/raids-lab/projecthub/pkg/utils"
)

type alertMgr struct {
	handler alertHandlerInterface
}

var (
	once    sync.Once
	alerter *alertMgr
)

func GetAlertMgr() AlertInterface {
	once.Do(func() {
		alerter = initAlertMgr(config.GetConfig().SMTP)
	})
	return alerter
}

// initAlertMgr 根据配置选择具体的通知通道，未配置 SMTP 时只写日志
func initAlertMgr(cfg config.SMTPConfig) *alertMgr {
	if cfg.Host == "" {
		logutils.Log.Warn("smtp host not configured, notifications are only logged")
		return &alertMgr{handler: newLogAlerter()}
	}
	return &alertMgr{handler: newSMTPAlerter(cfg)}
}

var (
	assignedTemplate = template.Must(template.New("assigned").Funcs(funcs).Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>Hi {{.To.Name}}, you've been assigned a task</h2>
  <p><strong>{{.TaskTitle}}</strong> in project <strong>{{.ProjectName}}</strong></p>
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  {{if .DueDate}}<p>Due: {{due .DueDate}}</p>{{end}}
  {{if .Link}}<p><a href="{{.Link}}">View task</a></p>{{end}}
</div>`))

	reminderTemplate = template.Must(template.New("reminder").Funcs(funcs).Parse(`
<div style="font-family: Arial, sans-serif;">
  <h2>Reminder: {{.TaskTitle}} is due</h2>
  <p>Hi {{.To.Name}}, the task <strong>{{.TaskTitle}}</strong> in project
  <strong>{{.ProjectName}}</strong> was due {{due .DueDate}} and is not done yet.</p>
  {{if .Link}}<p><a href="{{.Link}}">View task</a></p>{{end}}
</div>`))
)

var funcs = template.FuncMap{
	"due": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return utils.FormatLocal(*t)
	},
}

func render(tpl *template.Template, notice *TaskNotice) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, notice); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (a *alertMgr) send(ctx context.Context, kind, subject string, tpl *template.Template, notice *TaskNotice) error {
	if notice.To.Email == "" {
		return fmt.Errorf("%s notice for task %s has no recipient", kind, notice.TaskID)
	}
	body, err := render(tpl, notice)
	if err == nil {
		err = a.handler.SendMessageTo(ctx, &notice.To, subject, body)
	}
	metrics.Notifications.WithLabelValues(kind, metrics.Result(err)).Inc()
	return err
}

func (a *alertMgr) TaskAssigned(ctx context.Context, notice *TaskNotice) error {
	subject := fmt.Sprintf("New Task Assignment in %s", notice.ProjectName)
	return a.send(ctx, "task_assigned", subject, assignedTemplate, notice)
}

func (a *alertMgr) TaskReminder(ctx context.Context, notice *TaskNotice) error {
	subject := fmt.Sprintf("Reminder for %s", notice.TaskTitle)
	return a.send(ctx, "task_reminder", subject, reminderTemplate, notice)
}
