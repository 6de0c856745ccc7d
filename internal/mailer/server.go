package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"regexp"
	"time"

	"gopkg.in/gomail.v2"

	"bitcoin-analyst/internal/logger"
	"bitcoin-analyst/internal/store"
)

// ErrNotConfigured is returned when SMTP credentials are missing from the
// environment.
var ErrNotConfigured = errors.New("email service not configured")

// Sender relays a composed report to a recipient.
type Sender interface {
	Send(to, subject, body string) error
}

// smtpSender sends mail over SMTP with STARTTLS. Credentials are read from
// the environment per send so the server can start unconfigured.
type smtpSender struct {
	host string
	port int
}

// NewSMTPSender creates the production sender.
func NewSMTPSender(host string, port int) Sender {
	return &smtpSender{host: host, port: port}
}

func (s *smtpSender) Send(to, subject, body string) error {
	from := os.Getenv("GMAIL_EMAIL")
	password := os.Getenv("GMAIL_PASSWORD")
	if from == "" || password == "" {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, from, password)
	return d.DialAndSend(m)
}

// Server exposes the report mail endpoint and a health check.
type Server struct {
	cfg    *store.Config
	sender Sender
	mux    *http.ServeMux
}

// NewServer creates the mailer HTTP server.
func NewServer(cfg *store.Config, sender Sender) *Server {
	s := &Server{
		cfg:    cfg,
		sender: sender,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/send-report", s.handleSendReport)
	s.mux.HandleFunc("/health", s.handleHealth)
	return s
}

// Handler returns the server's handler with CORS applied. The generated
// report page is often opened from file://, so cross-origin must be allowed.
func (s *Server) Handler() http.Handler {
	return withCORS(s.mux)
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Mailer.Addr,
		Handler: s.Handler(),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	logger.Info(ctx, "Mailer listening", "addr", s.cfg.Mailer.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type sendRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSendReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"success": false, "error": "Method not allowed"})
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Email address is required"})
		return
	}

	if !emailPattern.MatchString(req.Email) {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Invalid email format"})
		return
	}

	html, err := os.ReadFile(s.cfg.Mailer.ReportFile)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "error": "Report file not found"})
			return
		}
		logger.ErrorWithErr(ctx, "Failed to read report file", err, "file", s.cfg.Mailer.ReportFile)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to read report"})
		return
	}

	text, err := ExtractText(string(html))
	if err != nil || text == "" {
		logger.ErrorWithErr(ctx, "Failed to extract report content", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Failed to extract report content"})
		return
	}

	body := ComposeBody(Professionalize(text))

	if err := s.sender.Send(req.Email, s.cfg.Mailer.Subject, body); err != nil {
		if errors.Is(err, ErrNotConfigured) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Email service not configured"})
			return
		}
		logger.ErrorWithErr(ctx, "Failed to send report", err, "recipient", req.Email)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": err.Error()})
		return
	}

	logger.Info(ctx, "Report sent", "recipient", req.Email)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Report sent successfully to %s", req.Email),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
