package web

import (
	"fmt"
	"html/template"
	"io"
	"log"
	"time"

	"github.com/sweeney/ovend/internal/logic"
	"github.com/sweeney/ovend/internal/status"
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
	"tempF": func(c float64) string {
		return fmt.Sprintf("%.1f", logic.CelsiusToFahrenheit(c))
	},
	"countdown": func(secs int) string {
		if secs < 0 {
			return "—"
		}
		return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Oven Controller</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.running { color: #c60; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Oven Controller</h1>

<h2>State</h2>
<table>
<tr><th>Mode</th><td>{{.Oven.Mode}}</td></tr>
<tr><th>Cycle</th><td class="{{if .Oven.Running}}running{{else}}off{{end}}">{{if .Oven.Running}}RUNNING — {{.Oven.Stage}}{{else}}IDLE{{end}}</td></tr>
<tr><th>Temperature</th><td>{{printf "%.2f" .Oven.TempC}}&deg;C ({{tempF .Oven.TempC}}&deg;F)</td></tr>
{{if .Oven.Running}}<tr><th>Time Left</th><td>{{countdown .Oven.SecondsLeft}}</td></tr>{{end}}
<tr><th>Heater</th><td class="{{if .Oven.HeaterOn}}on{{else}}off{{end}}">{{if .Oven.HeaterOn}}ON{{else}}OFF{{end}}</td></tr>
<tr><th>Backlight</th><td>{{if .Oven.BacklightOn}}on{{else}}off{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} &mdash; {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Cycles</h2>
<table>
<tr><th>Started</th><td>{{.Counts.Started}}</td></tr>
<tr><th>Completed</th><td>{{.Counts.Completed}}</td></tr>
<tr><th>Stopped</th><td>{{.Counts.Stopped}}</td></tr>
</table>

<h2>Daemon</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Tick</th><td>{{.Config.TickMs}}ms</td></tr>
<tr><th>Idle timeout</th><td>{{.Config.IdleTimeoutMs}}ms</td></tr>
<tr><th>Long press</th><td>{{.Config.LongPressMs}}ms</td></tr>
<tr><th>Hysteresis</th><td>{{printf "%.1f" .Config.HysteresisC}}&deg;C</td></tr>
</table>

<p><a href="/index.json">raw JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	if err := indexTmpl.Execute(w, snap); err != nil {
		log.Printf("web: render template: %v", err)
	}
}
