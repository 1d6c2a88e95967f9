package printing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"sync"
	"time"

	"brother-bridge/brotherql"
	"brother-bridge/core/storage"
	"brother-bridge/feature/machines"
	machinemodels "brother-bridge/feature/machines/models"
	"brother-bridge/feature/printing/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles print jobs.
type Service struct {
	cfg      Config
	db       *gorm.DB
	machines *machines.Service
	client   storage.Client
	bucket   string
	logger   *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new print service. client may be nil when
// artifact archiving is disabled.
func NewService(cfg Config, db *gorm.DB, machineSvc *machines.Service, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		cfg:      cfg,
		db:       db,
		machines: machineSvc,
		client:   client,
		bucket:   bucket,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Migrate creates the print job table.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&models.PrintJob{})
}

// Print converts the label image for the machine and sends it to the
// printer. A PrintJob row records the attempt either way; printer-control
// errors are stored verbatim and returned unchanged.
func (s *Service) Print(ctx context.Context, idOrSlug string, img image.Image) (*models.PrintJob, error) {
	m, err := s.machines.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}
	return s.print(ctx, m, img)
}

// TestPrint renders the built-in test label sized to the machine's media
// and prints it. Rotation is honored: the label is rendered transposed so
// it matches the printable width after the configured rotation.
func (s *Service) TestPrint(ctx context.Context, idOrSlug string) (*models.PrintJob, error) {
	m, err := s.machines.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	opts, _, err := s.machines.BuildOptions(m)
	if err != nil {
		return nil, err
	}

	length := opts.Label.DotsLength
	if length == 0 {
		length = 300
		if opts.Model.MinLengthDots > length {
			length = opts.Model.MinLengthDots
		}
	}

	w, h := opts.Label.DotsPrintable, length
	if m.Rotation == 90 || m.Rotation == 270 {
		w, h = h, w
	}

	return s.print(ctx, m, RenderTest(m.Name, w, h))
}

func (s *Service) print(ctx context.Context, m *machinemodels.Machine, img image.Image) (*models.PrintJob, error) {
	if !m.Enabled {
		return nil, machines.ErrValidation{Err: fmt.Errorf("machine %q is disabled", m.Slug)}
	}

	opts, target, err := s.machines.BuildOptions(m)
	if err != nil {
		return nil, err
	}

	job := &models.PrintJob{
		ID:        uuid.NewString(),
		MachineID: m.ID,
		Status:    models.StatusQueued,
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to record print job: %w", err)
	}
	defer s.pruneJobs(ctx)

	s.archive(ctx, job, img)

	data, err := brotherql.Convert(img, opts)
	if err != nil {
		return s.fail(ctx, job, err)
	}

	// One print at a time per device; Brother printers reject
	// interleaved jobs on the raw port.
	lock := s.lock(m.ID)
	lock.Lock()
	defer lock.Unlock()

	job.Status = models.StatusPrinting
	s.save(ctx, job)

	sendCtx := ctx
	if s.cfg.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	backend, err := brotherql.OpenBackend(sendCtx, target.String())
	if err != nil {
		return s.fail(ctx, job, err)
	}
	defer backend.Close()

	if err := backend.Send(sendCtx, data); err != nil {
		return s.fail(ctx, job, err)
	}

	job.Status = models.StatusDone
	s.save(ctx, job)

	s.logger.Info("label printed",
		zap.String("job", job.ID),
		zap.String("machine", m.Slug),
		zap.String("target", m.Target),
		zap.Int("bytes", len(data)))

	return job, nil
}

// ListJobs returns the most recent print jobs.
func (s *Service) ListJobs(ctx context.Context) ([]models.PrintJob, error) {
	limit := s.cfg.JobHistory
	if limit <= 0 {
		limit = 50
	}

	var jobs []models.PrintJob
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list print jobs: %w", err)
	}
	return jobs, nil
}

// GetJob returns one print job by id.
func (s *Service) GetJob(ctx context.Context, id string) (*models.PrintJob, error) {
	var job models.PrintJob
	if err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("print job %q: %w", id, err)
	}
	return &job, nil
}

// Artifact streams the archived label image of a job.
func (s *Service) Artifact(ctx context.Context, id string) (io.ReadCloser, error) {
	job, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.ArtifactKey == "" || s.client == nil {
		return nil, fmt.Errorf("print job %q has no artifact: %w", id, gorm.ErrRecordNotFound)
	}
	return s.client.GetObject(ctx, s.bucket, job.ArtifactKey, minio.GetObjectOptions{})
}

// archive copies the rendered label to object storage, best effort. A
// dead object store must never fail a print.
func (s *Service) archive(ctx context.Context, job *models.PrintJob, img image.Image) {
	if !s.cfg.Archive || s.client == nil {
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.logger.Warn("failed to encode label artifact", zap.Error(err))
		return
	}

	key := "jobs/" + job.ID + ".png"
	_, err := s.client.PutObject(ctx, s.bucket, key, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "image/png",
	})
	if err != nil {
		s.logger.Warn("failed to archive label artifact",
			zap.String("job", job.ID), zap.Error(err))
		return
	}

	job.ArtifactKey = key
}

// pruneJobs trims the job table to the configured history and sweeps the
// archive for artifacts that no longer belong to a surviving job. Best
// effort: pruning must never fail a print. JobHistory <= 0 keeps
// everything.
func (s *Service) pruneJobs(ctx context.Context) {
	limit := s.cfg.JobHistory
	if limit <= 0 {
		return
	}

	var jobs []models.PrintJob
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error; err != nil {
		s.logger.Warn("failed to prune print jobs", zap.Error(err))
		return
	}
	if len(jobs) <= limit {
		return
	}

	stale := jobs[limit:]
	ids := make([]string, len(stale))
	for i, j := range stale {
		ids[i] = j.ID
	}
	if err := s.db.WithContext(ctx).Delete(&models.PrintJob{}, "id IN ?", ids).Error; err != nil {
		s.logger.Warn("failed to prune print jobs", zap.Error(err))
		return
	}

	if s.client == nil {
		return
	}

	keep := make(map[string]bool, limit)
	for _, j := range jobs[:limit] {
		if j.ArtifactKey != "" {
			keep[j.ArtifactKey] = true
		}
	}
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: "jobs/"}) {
		if obj.Err != nil {
			s.logger.Warn("failed to list archived artifacts", zap.Error(obj.Err))
			return
		}
		if keep[obj.Key] {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("failed to remove archived artifact",
				zap.String("key", obj.Key), zap.Error(err))
		}
	}
}

func (s *Service) fail(ctx context.Context, job *models.PrintJob, cause error) (*models.PrintJob, error) {
	job.Status = models.StatusFailed
	job.Error = cause.Error()
	s.save(ctx, job)
	return job, cause
}

func (s *Service) save(ctx context.Context, job *models.PrintJob) {
	if err := s.db.WithContext(ctx).Save(job).Error; err != nil {
		s.logger.Error("failed to update print job",
			zap.String("job", job.ID), zap.Error(err))
	}
}

func (s *Service) lock(machineID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.locks[machineID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[machineID] = l
	}
	return l
}
