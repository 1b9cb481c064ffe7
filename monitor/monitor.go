package monitor

import (
	"os"

	"permit-management-api/config"

	"github.com/gin-gonic/gin"
)

func accessToken() string {
	if token := os.Getenv("MONITOR_TOKEN"); token != "" {
		return token
	}
	return "secret-token"
}

// RegisterMonitorPage serves a minimal live status page for operators.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Permit API Monitor</title>
  <style>
    body { background: #111; color: #ddd; font-family: -apple-system, 'Segoe UI', sans-serif; padding: 20px; }
    h1 { font-size: 1.5rem; margin-bottom: 1rem; }
    #status { margin-bottom: 1rem; font-weight: 600; }
    #logs { background: #000; padding: 1rem; border-radius: 8px; max-height: 500px; overflow-y: auto;
            white-space: pre-wrap; font-family: monospace; font-size: 0.85rem; }
    button { padding: 0.5rem 1rem; border: none; border-radius: 6px; cursor: pointer; }
  </style>
</head>
<body>
  <h1>Permit API Monitor</h1>
  <div id="status">Status: checking...</div>
  <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
  <pre id="logs">Loading logs...</pre>
  <script>
    let liveLogs = true;
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');
    const params = new URLSearchParams(window.location.search);

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => { statusElement.textContent = 'Status: ' + (data.status === 'ok' ? 'online' : 'degraded'); })
        .catch(() => { statusElement.textContent = 'Status: offline'; });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + (params.get('token') || ''))
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))
	})
}

// RegisterLogsRoute exposes the backend log file behind a token check.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != accessToken() {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}
