package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// IncidenciaPayload is posted to the hotel's incident/audit webhook whenever a
// reservation enters a state flagged crea_incidencia, and for administrative
// bypass overrides.
type IncidenciaPayload struct {
	ReservaID string  `json:"reserva_id"`
	Tipo      string  `json:"tipo"`
	Estado    string  `json:"estado"`
	Usuario   string  `json:"usuario"`
	Motivo    *string `json:"motivo,omitempty"`
	Fecha     string  `json:"fecha"` // ISO 8601
}

// IncidenciaResponse acknowledges receipt by the webhook.
type IncidenciaResponse struct {
	Recibido bool   `json:"recibido"`
	Ticket   string `json:"ticket,omitempty"`
}

// IncidenciasClient posts incident reports to the hotel operations webhook.
// Delivery failures are retried asynchronously; the webhook being down must
// never block a state transition.
type IncidenciasClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewIncidenciasClient(baseURL string) *IncidenciasClient {
	return &IncidenciasClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Reportar sends one incident to the webhook.
func (c *IncidenciasClient) Reportar(ctx context.Context, payload IncidenciaPayload) (*IncidenciaResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("incidencias: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/incidencias", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("incidencias: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("incidencias: webhook unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("incidencias: webhook returned %d", resp.StatusCode)
	}

	var result IncidenciaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("incidencias: decode response: %w", err)
	}
	return &result, nil
}
