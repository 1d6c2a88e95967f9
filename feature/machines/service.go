package machines

import (
	"context"
	"fmt"
	"strings"

	"brother-bridge/brotherql"
	"brother-bridge/core/utils"
	"brother-bridge/feature/machines/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Driver is the only driver this bridge speaks.
const Driver = "brother"

// ErrValidation marks errors caused by a bad machine definition, so the
// handler can answer 400 instead of 500.
type ErrValidation struct {
	Err error
}

func (e ErrValidation) Error() string { return e.Err.Error() }
func (e ErrValidation) Unwrap() error { return e.Err }

// Service handles machine registry operations.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new machine service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{db: db, logger: logger}
}

// Migrate creates the machines table.
func (s *Service) Migrate() error {
	return s.db.AutoMigrate(&models.Machine{})
}

// List returns every registered machine.
func (s *Service) List(ctx context.Context) ([]models.Machine, error) {
	var machines []models.Machine
	if err := s.db.WithContext(ctx).Order("name").Find(&machines).Error; err != nil {
		return nil, fmt.Errorf("failed to list machines: %w", err)
	}
	return machines, nil
}

// Get returns one machine by id or slug.
func (s *Service) Get(ctx context.Context, idOrSlug string) (*models.Machine, error) {
	var m models.Machine
	err := s.db.WithContext(ctx).
		Where("id = ? OR slug = ?", idOrSlug, idOrSlug).
		First(&m).Error
	if err != nil {
		return nil, fmt.Errorf("machine %q: %w", idOrSlug, err)
	}
	return &m, nil
}

// Create registers a new machine from the request, filling unset settings
// with the schema defaults.
func (s *Service) Create(ctx context.Context, req models.MachineRequest) (*models.Machine, error) {
	if req.Name == "" {
		return nil, ErrValidation{fmt.Errorf("machine name is required")}
	}

	m := &models.Machine{
		ID:     uuid.NewString(),
		Name:   req.Name,
		Slug:   req.Slug,
		Driver: Driver,
	}
	if m.Slug == "" {
		m.Slug = slugify(req.Name)
	}
	if m.Slug == "" {
		// Names without alphanumeric runes slugify to nothing; an empty
		// slug would collide on the unique index and be unresolvable.
		m.Slug = m.ID
	}

	applyDefaults(m)
	applySettings(m, req.Settings)

	if err := s.validate(m); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, fmt.Errorf("failed to create machine: %w", err)
	}

	s.logger.Info("machine registered",
		zap.String("id", m.ID),
		zap.String("model", m.Model),
		zap.String("target", m.Target))

	return m, nil
}

// Update applies the request to an existing machine. Only submitted
// settings change; the rest keep their stored values.
func (s *Service) Update(ctx context.Context, idOrSlug string, req models.MachineRequest) (*models.Machine, error) {
	m, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		m.Name = req.Name
	}
	if req.Slug != "" {
		m.Slug = req.Slug
	}
	applySettings(m, req.Settings)

	if err := s.validate(m); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(m).Error; err != nil {
		return nil, fmt.Errorf("failed to update machine: %w", err)
	}

	return m, nil
}

// Delete removes a machine from the registry.
func (s *Service) Delete(ctx context.Context, idOrSlug string) error {
	m, err := s.Get(ctx, idOrSlug)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Delete(m).Error; err != nil {
		return fmt.Errorf("failed to delete machine: %w", err)
	}

	return nil
}

// BuildOptions maps the stored machine settings onto the printer-control
// options and target. Every setting passes through unchanged; the lookup
// errors double as validation for records written by older versions.
func (s *Service) BuildOptions(m *models.Machine) (brotherql.ConvertOptions, brotherql.Target, error) {
	model, err := brotherql.ModelByName(m.Model)
	if err != nil {
		return brotherql.ConvertOptions{}, brotherql.Target{}, err
	}

	label, err := brotherql.LabelByID(m.Media)
	if err != nil {
		return brotherql.ConvertOptions{}, brotherql.Target{}, err
	}

	target, err := brotherql.ParseTarget(m.Target)
	if err != nil {
		return brotherql.ConvertOptions{}, brotherql.Target{}, err
	}

	opts := brotherql.ConvertOptions{
		Model:       model,
		Label:       label,
		Rotate:      m.Rotation,
		Threshold:   uint8(m.Threshold),
		AutoCut:     m.AutoCut,
		HighQuality: m.HighQuality,
		Compress:    m.Compress,
	}

	return opts, target, nil
}

// validate rejects machines the printer-control layer would refuse,
// before they reach the database.
func (s *Service) validate(m *models.Machine) error {
	if m.Driver != Driver {
		return ErrValidation{fmt.Errorf("unsupported driver %q", m.Driver)}
	}
	if _, err := brotherql.ModelByName(m.Model); err != nil {
		return ErrValidation{err}
	}
	if _, err := brotherql.LabelByID(m.Media); err != nil {
		return ErrValidation{err}
	}
	if _, err := brotherql.ParseTarget(m.Target); err != nil {
		return ErrValidation{err}
	}
	switch m.Rotation {
	case 0, 90, 180, 270:
	default:
		return ErrValidation{fmt.Errorf("invalid rotation %d: must be 0, 90, 180 or 270", m.Rotation)}
	}
	if m.Threshold < 0 || m.Threshold > 255 {
		return ErrValidation{fmt.Errorf("invalid threshold %d: must be 0-255", m.Threshold)}
	}
	return nil
}

// applyDefaults fills a fresh machine with the schema defaults.
func applyDefaults(m *models.Machine) {
	for _, s := range Schema() {
		setSetting(m, s.Key, s.Default)
	}
}

// applySettings overwrites the machine fields named in the map.
func applySettings(m *models.Machine, settings map[string]any) {
	for key, val := range settings {
		setSetting(m, key, val)
	}
}

func setSetting(m *models.Machine, key string, val any) {
	switch key {
	case "model":
		m.Model = utils.ToString(val)
	case "media":
		m.Media = utils.ToString(val)
	case "target":
		m.Target = utils.ToString(val)
	case "rotation":
		m.Rotation = utils.ToInt(val)
	case "auto_cut":
		m.AutoCut = utils.ToBool(val)
	case "high_quality":
		m.HighQuality = utils.ToBool(val)
	case "compress":
		m.Compress = utils.ToBool(val)
	case "threshold":
		m.Threshold = int(utils.ToUint8(val))
	case "enabled":
		m.Enabled = utils.ToBool(val)
	}
}

// slugify turns a display name into a URL-safe identifier.
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	return strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
}
