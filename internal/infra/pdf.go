package infra

// Confirmation ticket generation using go-pdf/fpdf. A6-size ticket with the
// venue header, customer name, dates and the furniture assigned per day.
// The output file is saved to storagePath/reserva_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"purobeach/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateConfirmacionPDF renders the confirmation ticket for a reservation
// (with Cliente and Asignaciones preloaded) and returns the absolute path of
// the generated file.
func GenerateConfirmacionPDF(reserva *model.Reserva, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("reserva_%s.pdf", reserva.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Puro Beach Club", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Confirmación de Reserva", "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.Line(8, pdf.GetY(), pageW-8, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	nombre := ""
	if reserva.Cliente != nil {
		nombre = reserva.Cliente.NombreCompleto()
	}
	pdf.CellFormat(contentW, 5, nombre, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	if reserva.FechaInicio.Equal(reserva.FechaFin) {
		pdf.CellFormat(contentW, 5, "Fecha: "+reserva.FechaInicio.Format("02/01/2006"), "", 1, "L", false, 0, "")
	} else {
		rango := reserva.FechaInicio.Format("02/01/2006") + " - " + reserva.FechaFin.Format("02/01/2006")
		pdf.CellFormat(contentW, 5, "Fechas: "+rango, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Personas: %d", reserva.NumPersonas), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	// Furniture per day, sorted by date then number.
	asignaciones := make([]model.Asignacion, len(reserva.Asignaciones))
	copy(asignaciones, reserva.Asignaciones)
	sort.SliceStable(asignaciones, func(i, j int) bool {
		if !asignaciones[i].Fecha.Equal(asignaciones[j].Fecha) {
			return asignaciones[i].Fecha.Before(asignaciones[j].Fecha)
		}
		a, b := asignaciones[i].Mobiliario, asignaciones[j].Mobiliario
		if a != nil && b != nil {
			return a.Numero < b.Numero
		}
		return false
	})

	if len(asignaciones) > 0 {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW*0.4, 5, "Fecha", "B", 0, "L", false, 0, "")
		pdf.CellFormat(contentW*0.6, 5, "Mobiliario", "B", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, a := range asignaciones {
			numero := ""
			if a.Mobiliario != nil {
				numero = a.Mobiliario.Numero + " (" + a.Mobiliario.Tipo + ")"
			}
			pdf.CellFormat(contentW*0.4, 5, a.Fecha.Format("02/01/2006"), "", 0, "L", false, 0, "")
			pdf.CellFormat(contentW*0.6, 5, numero, "", 1, "L", false, 0, "")
		}
	}

	if reserva.PrecioFinal != nil {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Total: "+reserva.PrecioFinal.StringFixed(2)+" EUR", "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "¡Le esperamos!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
