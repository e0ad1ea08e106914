package main

import (
	_ "embed"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/logging"
)

//go:embed index.html
var htmlPage string

func main() {
	cfg, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	page := renderPage(cfg.Web.DisplayHost, cfg.SSH.Port)
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, page)
	})

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	logger.Info("starting web server", zap.String("addr", "http://"+addr))
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// renderPage fills the ssh command into the landing page. The port flag is
// left out for the default port.
func renderPage(sshHost, sshPort string) string {
	portFlag := ""
	if sshPort != "" && sshPort != "22" {
		portFlag = "-p " + sshPort + " "
	}
	r := strings.NewReplacer("{{.SSHHost}}", sshHost, "{{.SSHPortFlag}}", portFlag)
	return r.Replace(htmlPage)
}
