package metrics

import (
	"sync"
	"time"
)

// OperationType names a filesystem-level operation on the adapter.
type OperationType string

const (
	OpRead       OperationType = "read"
	OpWrite      OperationType = "write"
	OpDelete     OperationType = "delete"
	OpDeleteDir  OperationType = "delete_dir"
	OpMove       OperationType = "move"
	OpCopy       OperationType = "copy"
	OpList       OperationType = "list"
	OpExists     OperationType = "exists"
	OpMetadata   OperationType = "metadata"
	OpVisibility OperationType = "visibility"
	OpRestore    OperationType = "restore"
	OpURL        OperationType = "url"
)

// OperationProfile tracks latency and volume for one operation type.
type OperationProfile struct {
	Count             int64         `json:"count"`
	TotalLatency      time.Duration `json:"total_latency"`
	MinLatency        time.Duration `json:"min_latency"`
	MaxLatency        time.Duration `json:"max_latency"`
	AverageLatency    time.Duration `json:"average_latency"`
	ErrorCount        int64         `json:"error_count"`
	BytesProcessed    int64         `json:"bytes_processed"`
	AvgBytesPerOp     float64       `json:"avg_bytes_per_op"`
	ThroughputMBps    float64       `json:"throughput_mbps"`
	LastOperationTime time.Time     `json:"last_operation_time"`
}

// Profile aggregates per-operation latency profiles at the filesystem
// layer, above the per-request Prometheus series the Collector keeps.
// Passive and mutex-guarded; no goroutines.
type Profile struct {
	mu                  sync.RWMutex
	operations          map[OperationType]*OperationProfile
	startTime           time.Time
	lastUpdateTime      time.Time
	totalOperations     int64
	totalErrors         int64
	totalBytesProcessed int64
}

// NewProfile creates an empty operation profile.
func NewProfile() *Profile {
	return &Profile{
		operations:     make(map[OperationType]*OperationProfile),
		startTime:      time.Now(),
		lastUpdateTime: time.Now(),
	}
}

// Record folds one operation into the profile.
func (p *Profile) Record(opType OperationType, latency time.Duration, bytes int64, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	p.lastUpdateTime = now
	p.totalOperations++
	p.totalBytesProcessed += bytes

	if p.operations[opType] == nil {
		p.operations[opType] = &OperationProfile{MinLatency: latency}
	}

	op := p.operations[opType]
	op.Count++
	op.TotalLatency += latency
	op.LastOperationTime = now
	op.BytesProcessed += bytes

	if latency < op.MinLatency || op.MinLatency == 0 {
		op.MinLatency = latency
	}
	if latency > op.MaxLatency {
		op.MaxLatency = latency
	}

	op.AverageLatency = time.Duration(int64(op.TotalLatency) / op.Count)

	if err != nil {
		op.ErrorCount++
		p.totalErrors++
	}

	if op.Count > 0 {
		op.AvgBytesPerOp = float64(op.BytesProcessed) / float64(op.Count)
	}

	if op.TotalLatency > 0 {
		seconds := op.TotalLatency.Seconds()
		op.ThroughputMBps = (float64(op.BytesProcessed) / (1024 * 1024)) / seconds
	}
}

// GetOperation returns a copy of the profile for one operation type, or
// nil if it has never been recorded.
func (p *Profile) GetOperation(opType OperationType) *OperationProfile {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if op, exists := p.operations[opType]; exists {
		opCopy := *op
		return &opCopy
	}
	return nil
}

// GetSummary returns a summary of all recorded operations.
func (p *Profile) GetSummary() map[string]interface{} {
	p.mu.RLock()
	defer p.mu.RUnlock()

	uptime := time.Since(p.startTime)

	errorRate := 0.0
	if p.totalOperations > 0 {
		errorRate = float64(p.totalErrors) / float64(p.totalOperations)
	}

	return map[string]interface{}{
		"uptime_seconds":        uptime.Seconds(),
		"total_operations":      p.totalOperations,
		"total_errors":          p.totalErrors,
		"total_bytes_processed": p.totalBytesProcessed,
		"overall_error_rate":    errorRate,
		"operations_per_second": float64(p.totalOperations) / uptime.Seconds(),
		"throughput_mbps":       (float64(p.totalBytesProcessed) / (1024 * 1024)) / uptime.Seconds(),
		"last_update":           p.lastUpdateTime.Format(time.RFC3339),
	}
}

// Reset clears all recorded profiles.
func (p *Profile) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.operations = make(map[OperationType]*OperationProfile)
	p.startTime = time.Now()
	p.lastUpdateTime = time.Now()
	p.totalOperations = 0
	p.totalErrors = 0
	p.totalBytesProcessed = 0
}
