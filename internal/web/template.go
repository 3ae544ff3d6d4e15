package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/modulove/A-RYTH-MATIK/internal/logic"
	"github.com/modulove/A-RYTH-MATIK/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	"level": logic.Level,
	"inc":   func(i int) int { return i + 1 },
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>A-RYTH-MATIK</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.HIGH { color: green; font-weight: bold; }
.LOW { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>A-RYTH-MATIK</h1>

<h2>Panel</h2>
<table>
<tr><th>Ready</th><td>{{if .Ready}}yes{{else}}no{{end}}</td></tr>
<tr><th>Orientation</th><td id="orientation">{{.Panel.Orientation}}</td></tr>
<tr><th>Encoder</th><td>{{if .Panel.ReverseEncoder}}reversed{{else}}normal{{end}}</td></tr>
<tr><th>CLK</th><td id="clock" class="{{level .Panel.Clock}}">{{level .Panel.Clock}}</td></tr>
<tr><th>RST</th><td id="reset" class="{{level .Panel.Reset}}">{{level .Panel.Reset}}</td></tr>
<tr><th>Clock LED</th><td class="{{level .Panel.ClockLED}}">{{level .Panel.ClockLED}}</td></tr>
{{range $i, $on := .Panel.Outputs}}<tr><th>Output {{inc $i}}</th><td id="out{{inc $i}}" class="{{level $on}}">{{level $on}}</td></tr>
{{end}}</table>

<h2>Event Counts</h2>
<table>
<tr><th>Clock rising</th><td>{{.Counts.ClockRising}}</td></tr>
<tr><th>Clock falling</th><td>{{.Counts.ClockFalling}}</td></tr>
<tr><th>Reset rising</th><td>{{.Counts.ResetRising}}</td></tr>
<tr><th>Reset falling</th><td>{{.Counts.ResetFalling}}</td></tr>
<tr><th>Encoder +</th><td>{{.Counts.Increments}}</td></tr>
<tr><th>Encoder -</th><td>{{.Counts.Decrements}}</td></tr>
<tr><th>Short press</th><td>{{.Counts.ShortPresses}}</td></tr>
<tr><th>Long press</th><td>{{.Counts.LongPresses}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Cycles</th><td>{{.Cycles}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Long press</th><td>{{.Config.LongPressMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>GPIO chip</th><td>{{.Config.Chip}}</td></tr>
<tr><th>Passthrough</th><td>{{if .Config.Passthrough}}on{{else}}off{{end}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	if err := indexTmpl.Execute(w, data); err != nil {
		log.Printf("web: render index: %v", err)
	}
}
