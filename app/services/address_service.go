package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/thai-address-parser/app/bootstrap"
	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/helpers/utils"
	"github.com/thai-address-parser/internal/parser"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/tagger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrEmptyAddress địa chỉ rỗng
	ErrEmptyAddress = errors.New("địa chỉ không được để trống")
	// ErrJobNotFound job không tồn tại
	ErrJobNotFound = errors.New("job không tồn tại")
	// ErrJobNotReady job chưa xử lý xong
	ErrJobNotReady = errors.New("job chưa hoàn thành")
)

// Job status
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// AddressService service xử lý logic parse địa chỉ
type AddressService struct {
	components *bootstrap.Components
	cache      ICacheService // nil là không dùng cache
	logger     *zap.Logger
	startTime  time.Time
	processed  atomic.Int64

	mu   sync.RWMutex
	jobs map[string]*job
}

// JobStatus trạng thái của job
type JobStatus struct {
	JobID              string
	Status             string
	Progress           float64
	Processed          int
	Total              int
	EstimatedRemaining int
	Message            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type job struct {
	status  JobStatus
	results []*models.AddressResult
	done    chan struct{}
}

// NewAddressService tạo mới AddressService
func NewAddressService(components *bootstrap.Components, cache ICacheService, logger *zap.Logger) *AddressService {
	return &AddressService{
		components: components,
		cache:      cache,
		logger:     logger,
		startTime:  time.Now(),
		jobs:       make(map[string]*job),
	}
}

// ParseAddress parse một địa chỉ, trả về thêm cờ cache hit
func (as *AddressService) ParseAddress(ctx context.Context, rawAddress string, options requests.ParseOptions) (*models.AddressResult, bool, error) {
	if strings.TrimSpace(rawAddress) == "" {
		return nil, false, ErrEmptyAddress
	}
	engine, err := as.engine(options.TokenizeEngine)
	if err != nil {
		return nil, false, err
	}

	useCache := options.UseCache && as.cache != nil
	key := ""
	if useCache {
		key = CacheKey(as.components.Parser.Normalize(rawAddress), engine, as.components.ModelVersion)
		if cached, found, err := as.cache.Get(ctx, key); err != nil {
			as.logger.Warn("Lỗi đọc cache", zap.Error(err))
		} else if found && cached.GazetteerVersion == as.components.GazetteerVersion() {
			as.processed.Add(1)
			return withEntities(cached, rawAddress, options.ReturnEntities), true, nil
		}
	}

	result, err := as.parse(ctx, rawAddress, engine, options.ReturnEntities)
	if err != nil {
		return nil, false, err
	}

	if useCache {
		stored := *result
		stored.Entities = nil
		if err := as.cache.Set(ctx, key, &stored); err != nil {
			as.logger.Warn("Lỗi ghi cache", zap.Error(err))
		}
	}
	return result, false, nil
}

// engine kiểm tra tên tokenizer, rỗng là engine mặc định
func (as *AddressService) engine(name string) (string, error) {
	if name == "" {
		return as.components.Tokenizers.Default(), nil
	}
	if _, err := as.components.Tokenizers.Get(name); err != nil {
		return "", err
	}
	return name, nil
}

func (as *AddressService) parse(ctx context.Context, raw, engine string, entities bool) (*models.AddressResult, error) {
	result, err := as.components.Parser.Parse(ctx, raw, parser.Options{Engine: engine, WithEntities: entities})
	if err != nil {
		return nil, err
	}
	result.ModelVersion = as.components.ModelVersion
	result.GazetteerVersion = as.components.GazetteerVersion()
	as.processed.Add(1)
	return result, nil
}

// withEntities bản sao của kết quả trong cache, gắn raw của request
func withEntities(cached *models.AddressResult, raw string, entities bool) *models.AddressResult {
	r := *cached
	r.Raw = raw
	r.Entities = nil
	if entities {
		r.Entities = tagger.Entities(r.Tokens, r.Tags)
	}
	return &r
}

// ParseBatch parse song song (giới hạn theo batch_workers), giữ đúng thứ tự
// input. Dừng ở lỗi đầu tiên.
func (as *AddressService) ParseBatch(ctx context.Context, addresses []string, options requests.ParseOptions, progress func(done int)) ([]*models.AddressResult, error) {
	engine, err := as.engine(options.TokenizeEngine)
	if err != nil {
		return nil, err
	}

	results := make([]*models.AddressResult, len(addresses))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(as.components.Config.BatchWorkers)
	for i, address := range addresses {
		i, address := i, address
		g.Go(func() error {
			r, err := as.parse(gctx, address, engine, options.ReturnEntities)
			if err != nil {
				return fmt.Errorf("địa chỉ thứ %d: %w", i, err)
			}
			results[i] = r
			if progress != nil {
				progress(int(done.Add(1)))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// EstimateBatchProcessingTime ước tính thời gian xử lý batch (giây)
func (as *AddressService) EstimateBatchProcessingTime(addressCount int) int {
	workers := max(as.components.Config.BatchWorkers, 1)
	// khoảng 5ms mỗi địa chỉ trên một worker
	return (addressCount*5/workers + 999) / 1000
}

// StartJob tạo job batch và xử lý trong background
func (as *AddressService) StartJob(ctx context.Context, addresses []string, options requests.ParseOptions) (string, error) {
	if len(addresses) == 0 {
		return "", ErrEmptyAddress
	}
	if _, err := as.engine(options.TokenizeEngine); err != nil {
		return "", err
	}

	now := time.Now()
	j := &job{
		status: JobStatus{
			JobID:     utils.GenerateUUID(),
			Status:    JobStatusPending,
			Total:     len(addresses),
			Message:   "Đang chờ xử lý",
			CreatedAt: now,
			UpdatedAt: now,
		},
		done: make(chan struct{}),
	}

	as.mu.Lock()
	as.jobs[j.status.JobID] = j
	as.mu.Unlock()

	go as.runJob(context.WithoutCancel(ctx), j, addresses, options)
	return j.status.JobID, nil
}

// runJob xử lý job, cập nhật tiến độ sau mỗi địa chỉ
func (as *AddressService) runJob(ctx context.Context, j *job, addresses []string, options requests.ParseOptions) {
	defer close(j.done)
	start := time.Now()

	as.updateJob(j, func(s *JobStatus) {
		s.Status = JobStatusRunning
		s.Message = "Đang xử lý..."
	})

	results, err := as.ParseBatch(ctx, addresses, options, func(done int) {
		as.updateJob(j, func(s *JobStatus) {
			if done <= s.Processed {
				return
			}
			s.Processed = done
			s.Progress = float64(done) / float64(s.Total)
			perItem := time.Since(start) / time.Duration(done)
			s.EstimatedRemaining = int((perItem * time.Duration(s.Total-done)).Seconds())
		})
	})
	if err != nil {
		as.logger.Error("Batch job thất bại", zap.String("job_id", j.status.JobID), zap.Error(err))
		as.updateJob(j, func(s *JobStatus) {
			s.Status = JobStatusFailed
			s.Message = err.Error()
		})
		return
	}

	as.mu.Lock()
	j.results = results
	j.status.Status = JobStatusDone
	j.status.Processed = len(results)
	j.status.Progress = 1
	j.status.EstimatedRemaining = 0
	j.status.Message = "Hoàn thành xử lý"
	j.status.UpdatedAt = time.Now()
	as.mu.Unlock()

	as.logger.Info("Batch job completed",
		zap.String("job_id", j.status.JobID),
		zap.Int("total_addresses", len(addresses)),
		zap.Duration("took", time.Since(start)))
}

func (as *AddressService) updateJob(j *job, fn func(*JobStatus)) {
	as.mu.Lock()
	defer as.mu.Unlock()
	fn(&j.status)
	j.status.UpdatedAt = time.Now()
}

func (as *AddressService) lookupJob(jobID string) (*job, error) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	j, ok := as.jobs[jobID]
	if !ok {
		return nil, ErrJobNotFound
	}
	return j, nil
}

// GetJobStatus lấy trạng thái job
func (as *AddressService) GetJobStatus(jobID string) (JobStatus, error) {
	j, err := as.lookupJob(jobID)
	if err != nil {
		return JobStatus{}, err
	}
	as.mu.RLock()
	defer as.mu.RUnlock()
	return j.status, nil
}

// WaitJob chờ job kết thúc hoặc ctx bị huỷ
func (as *AddressService) WaitJob(ctx context.Context, jobID string) (JobStatus, error) {
	j, err := as.lookupJob(jobID)
	if err != nil {
		return JobStatus{}, err
	}
	select {
	case <-j.done:
		return as.GetJobStatus(jobID)
	case <-ctx.Done():
		return JobStatus{}, ctx.Err()
	}
}

// GetJobResults lấy kết quả job đã hoàn thành
func (as *AddressService) GetJobResults(jobID string) ([]*models.AddressResult, error) {
	j, err := as.lookupJob(jobID)
	if err != nil {
		return nil, err
	}
	as.mu.RLock()
	defer as.mu.RUnlock()
	if j.status.Status != JobStatusDone {
		return nil, fmt.Errorf("%w: %s", ErrJobNotReady, j.status.Status)
	}
	return j.results, nil
}

// GetJobResultsStream lấy kết quả job dưới dạng channel để stream
func (as *AddressService) GetJobResultsStream(ctx context.Context, jobID string) (<-chan *models.AddressResult, error) {
	results, err := as.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}

	resultChannel := make(chan *models.AddressResult, 100)
	go func() {
		defer close(resultChannel)
		for _, result := range results {
			select {
			case resultChannel <- result:
			case <-ctx.Done():
				return
			}
		}
	}()
	return resultChannel, nil
}

// ResolveLocation chuẩn hoá một đoạn địa danh, found=false khi không khớp
func (as *AddressService) ResolveLocation(text, option, province, postalCode string) (string, bool, error) {
	opt, err := resolver.ParseOption(option)
	if err != nil {
		return "", false, err
	}
	name, err := as.components.Resolver.Lookup(text, opt, province, postalCode)
	if errors.Is(err, resolver.ErrResolutionMiss) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// GetStartTime lấy thời gian khởi động service
func (as *AddressService) GetStartTime() time.Time {
	return as.startTime
}

// TotalProcessed số địa chỉ đã parse (kể cả từ cache)
func (as *AddressService) TotalProcessed() int64 {
	return as.processed.Load()
}

// Cache cache đang dùng, nil nếu không có
func (as *AddressService) Cache() ICacheService {
	return as.cache
}

// Components dữ liệu tham chiếu của service
func (as *AddressService) Components() *bootstrap.Components {
	return as.components
}
