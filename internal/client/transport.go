package client

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// loggingTransport logs every exchange on the shared logger.
type loggingTransport struct {
	Base http.RoundTripper
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	start := time.Now()
	resp, err := base.RoundTrip(req)
	entry := log.WithFields(logrus.Fields{
		"method":  req.Method,
		"url":     req.URL.Redacted(),
		"elapsed": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Warn("backend request failed")
		return nil, err
	}
	entry.WithField("status", resp.StatusCode).Debug("backend request")
	return resp, nil
}
