package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/hospitalvida/atendimento-api/internal/model"
	"github.com/hospitalvida/atendimento-api/internal/repository"
)

// Service produces workflow tallies and printable patient summaries.
type Service struct {
	patients      repository.PatientRepository
	triages       repository.TriageRepository
	consultations repository.ConsultationRepository
	medications   repository.MedicationRepository
}

func NewService(store *repository.Store) *Service {
	return &Service{
		patients:      store.Patients,
		triages:       store.Triages,
		consultations: store.Consultations,
		medications:   store.Medications,
	}
}

// Summary tallies patients by stage and triaged patients by priority.
func (s *Service) Summary(ctx context.Context) (*model.WorkflowSummary, error) {
	patients, err := s.patients.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}

	summary := &model.WorkflowSummary{
		TotalPatients: len(patients),
		ByStatus:      make(map[model.PatientStatus]int),
		ByPriority:    make(map[model.PriorityLevel]int),
	}
	for _, st := range model.AllStatuses() {
		summary.ByStatus[st] = 0
	}
	for _, p := range patients {
		summary.ByStatus[p.Status]++
	}

	triages, err := s.triages.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list triage records: %w", err)
	}
	for _, t := range triages {
		summary.ByPriority[t.PriorityLevel]++
	}

	return summary, nil
}

// PatientSummaryPDF renders the patient's clinical journey as a PDF document.
func (s *Service) PatientSummaryPDF(ctx context.Context, patientID uuid.UUID) ([]byte, error) {
	patient, err := s.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}

	triage, err := s.triages.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	consultation, err := s.consultations.GetByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	medications, err := s.medications.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("Resumo Clínico do Paciente"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	writeLine := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(45, 7, tr(label))
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 7, tr(value), "", "L", false)
	}

	writeLine("Nome:", patient.Name)
	writeLine("CPF:", patient.CPF)
	writeLine("Nascimento:", patient.BirthDate)
	writeLine("Registro:", patient.RegistrationDate.Format("02/01/2006 15:04"))
	writeLine("Status:", string(patient.Status))
	pdf.Ln(4)

	if triage != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, "Triagem")
		pdf.Ln(9)
		writeLine("Profissional:", triage.TriageBy)
		writeLine("Prioridade:", string(triage.PriorityLevel))
		writeLine("PA:", triage.BloodPressure)
		writeLine("FC / FR / SpO2:", fmt.Sprintf("%d bpm / %d rpm / %d%%", triage.HeartRate, triage.RespiratoryRate, triage.OxygenSaturation))
		writeLine("Temperatura:", fmt.Sprintf("%.1f °C", triage.Temperature))
		writeLine("Glasgow:", fmt.Sprintf("%d (%s)", triage.GlasgowTotal, triage.Trauma))
		writeLine("Dor:", fmt.Sprintf("%d/10", triage.PainLevel))
		writeLine("Queixas:", triage.MainComplaints)
		pdf.Ln(4)
	}

	if consultation != nil {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr("Consulta Médica"))
		pdf.Ln(9)
		writeLine("Médico(a):", consultation.DoctorName)
		writeLine("Estado geral:", string(consultation.GeneralState))
		writeLine("Queixa principal:", consultation.MainComplaint)
		if consultation.CID != "" {
			writeLine("CID:", consultation.CID)
		}
		if consultation.Diagnosis != "" {
			writeLine("Diagnóstico:", consultation.Diagnosis)
		}
		if consultation.Prescription != "" {
			writeLine("Prescrição:", consultation.Prescription)
		}
		pdf.Ln(4)
	}

	if len(medications) > 0 {
		pdf.SetFont("Helvetica", "B", 13)
		pdf.Cell(0, 8, tr("Medicações"))
		pdf.Ln(9)
		for _, m := range medications {
			line := fmt.Sprintf("%s - %s", m.CreatedAt.Format("02/01/2006 15:04"), m.NurseName)
			if m.SpecialInstructions != "" {
				line += " - " + m.SpecialInstructions
			}
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 7, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render patient summary: %w", err)
	}
	return buf.Bytes(), nil
}
