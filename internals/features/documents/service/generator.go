package service

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

/* =============== BULK ADMIT CARDS =============== */

// StudentSource covers the backend lookups the generator needs per student.
type StudentSource interface {
	GetStudent(ctx context.Context, studentID string) (studentmodel.Student, error)
	GetTempPassword(ctx context.Context, studentID string) (string, error)
}

// StructureGetter is satisfied by the fee structure cache, so a batch over
// one year/category hits the backend once no matter how many students.
type StructureGetter interface {
	Get(ctx context.Context, academicYear, category string) (*feemodel.FeeStructure, error)
}

// CardComposer renders one admit card.
type CardComposer interface {
	ComposeAdmitCard(student studentmodel.Student, fs *feemodel.FeeStructure, password string) ([]byte, string, error)
}

type BatchRequest struct {
	StudentIDs   []string
	AcademicYear string

	// Password, when set, overrides the per-student temporary password for
	// every card in the batch.
	Password string
}

type BatchItem struct {
	StudentID string `json:"student_id"`
	Filename  string `json:"filename,omitempty"`
	Error     string `json:"error,omitempty"`
}

type BatchResult struct {
	BatchID      string      `json:"batch_id"`
	AcademicYear string      `json:"academic_year"`
	Generated    int         `json:"generated"`
	Failed       int         `json:"failed"`
	Items        []BatchItem `json:"items"`

	ArchiveName string `json:"archive_name"`
	Archive     []byte `json:"-"`
}

type BatchGenerator struct {
	source     StudentSource
	structures StructureGetter
	composer   CardComposer
	pause      time.Duration

	sleep func(time.Duration)
}

func NewBatchGenerator(source StudentSource, structures StructureGetter, composer CardComposer, pause time.Duration) *BatchGenerator {
	return &BatchGenerator{
		source:     source,
		structures: structures,
		composer:   composer,
		pause:      pause,
		sleep:      time.Sleep,
	}
}

// Generate renders admit cards for the requested students strictly in order,
// pausing between items so the backend is never hammered. One student
// failing is recorded and skipped; the rest of the batch continues. The
// successful cards come back as a single zip archive.
func (g *BatchGenerator) Generate(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if len(req.StudentIDs) == 0 {
		return nil, fmt.Errorf("generator: empty student list")
	}

	res := &BatchResult{
		BatchID:      uuid.NewString(),
		AcademicYear: req.AcademicYear,
		ArchiveName:  archiveName(req.AcademicYear),
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	seen := make(map[string]int)

	for i, studentID := range req.StudentIDs {
		if i > 0 && g.pause > 0 {
			g.sleep(g.pause)
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generator: batch %s aborted: %w", res.BatchID, err)
		}

		data, filename, err := g.generateOne(ctx, studentID, req.Password)
		if err != nil {
			log.Printf("[ERROR] batch %s: admit card for %s failed: %v", res.BatchID, studentID, err)
			res.Failed++
			res.Items = append(res.Items, BatchItem{StudentID: studentID, Error: err.Error()})
			continue
		}

		filename = dedupe(filename, seen)
		w, err := zw.Create(filename)
		if err == nil {
			_, err = w.Write(data)
		}
		if err != nil {
			return nil, fmt.Errorf("generator: write %s to archive: %w", filename, err)
		}

		res.Generated++
		res.Items = append(res.Items, BatchItem{StudentID: studentID, Filename: filename})
	}

	// per-item outcomes travel inside the archive so failures survive the
	// download even though the response body is the zip itself
	manifest, err := sonic.MarshalIndent(res, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("generator: encode manifest: %w", err)
	}
	w, err := zw.Create("manifest.json")
	if err == nil {
		_, err = w.Write(manifest)
	}
	if err != nil {
		return nil, fmt.Errorf("generator: write manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("generator: close archive: %w", err)
	}
	res.Archive = buf.Bytes()

	log.Printf("[INFO] batch %s: %d generated, %d failed", res.BatchID, res.Generated, res.Failed)
	return res, nil
}

func (g *BatchGenerator) generateOne(ctx context.Context, studentID, password string) ([]byte, string, error) {
	student, err := g.source.GetStudent(ctx, studentID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch student: %w", err)
	}

	fs, err := g.structures.Get(ctx, student.AcademicYear, student.Category)
	if err != nil {
		return nil, "", fmt.Errorf("fee structure: %w", err)
	}

	if password == "" {
		// a missing temp password is fine, the card just omits the row; a
		// failed lookup is not worth failing the card over either
		pw, err := g.source.GetTempPassword(ctx, studentID)
		if err != nil {
			log.Printf("[WARN] temp password lookup for %s failed: %v", studentID, err)
		} else {
			password = pw
		}
	}

	return g.composer.ComposeAdmitCard(student, fs, password)
}

func archiveName(academicYear string) string {
	if academicYear == "" {
		return "AdmitCards.zip"
	}
	return fmt.Sprintf("AdmitCards_%s.zip", academicYear)
}

// dedupe keeps archive entries unique when two students share a filename.
func dedupe(filename string, seen map[string]int) string {
	n := seen[filename]
	seen[filename] = n + 1
	if n == 0 {
		return filename
	}
	ext := ".pdf"
	base := filename
	if len(filename) > len(ext) && filename[len(filename)-len(ext):] == ext {
		base = filename[:len(filename)-len(ext)]
	}
	return fmt.Sprintf("%s_%d%s", base, n+1, ext)
}
