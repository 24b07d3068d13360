package worker

// Sends reservation confirmation emails with the PDF ticket attached.

import (
	"context"
	"encoding/json"
	"fmt"

	"purobeach/internal/infra"
	"purobeach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// EmailWorker processes confirmation jobs from QueueEmail.
type EmailWorker struct {
	mailer         *infra.Mailer
	reservaRepo    repository.ReservaRepository
	pdfStoragePath string
}

func NewEmailWorker(mailer *infra.Mailer, reservaRepo repository.ReservaRepository, pdfStoragePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, reservaRepo: reservaRepo, pdfStoragePath: pdfStoragePath}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.Email == "" {
		log.Warn().Msg("email_worker: empty email — skipping")
		return
	}

	reservaID, err := uuid.Parse(payload.ReservaID)
	if err != nil {
		log.Error().Str("reserva_id", payload.ReservaID).Msg("email_worker: invalid reserva_id")
		return
	}
	reserva, err := w.reservaRepo.FindByID(ctx, reservaID)
	if err != nil {
		log.Error().Err(err).Str("reserva_id", payload.ReservaID).Msg("email_worker: reserva not found")
		return
	}

	pdfPath, err := infra.GenerateConfirmacionPDF(reserva, w.pdfStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("reserva_id", payload.ReservaID).Msg("email_worker: PDF generation failed, sending without attachment")
		pdfPath = ""
	}

	fecha := reserva.FechaInicio.Format("02/01/2006")
	if !reserva.FechaInicio.Equal(reserva.FechaFin) {
		fecha = fecha + " - " + reserva.FechaFin.Format("02/01/2006")
	}
	subject := "Confirmación de reserva — Puro Beach Club"
	body := fmt.Sprintf("Hola %s,\n\nTu reserva para el %s (%d personas) está confirmada.\nAdjuntamos el ticket de confirmación.\n\n¡Te esperamos!",
		payload.Nombre, fecha, reserva.NumPersonas)

	if err := w.mailer.SendConfirmacion(payload.Email, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.Email).Msg("email_worker: failed to send email")
		return
	}
	log.Info().Str("to", payload.Email).Str("reserva_id", payload.ReservaID).Msg("email_worker: confirmation sent")
}
