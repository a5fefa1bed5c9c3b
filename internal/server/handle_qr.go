package server

import (
	"log/slog"
	"net/http"

	"github.com/skip2/go-qrcode"
)

// handleQR renders a QR code of the journey's public address, for printing
// on the birthday card. Without a configured address the request's own
// origin is used.
func handleQR(logger *slog.Logger, publicURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := publicURL
		if target == "" {
			scheme := "http"
			if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
				scheme = "https"
			}
			target = scheme + "://" + r.Host + "/"
		}

		png, err := qrcode.Encode(target, qrcode.Medium, 256)
		if err != nil {
			logger.Error("encoding qr code failed", "url", target, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(png)
	}
}
