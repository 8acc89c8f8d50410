package views

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"mrmelo_sanctuary/models"
)

// State 一个展示槽位的状态
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateSuccess State = "success"
	StateError   State = "error"
)

var (
	// ErrBusy 槽位已有请求在进行中，触发按钮处于禁用状态
	ErrBusy = errors.New("a request is already in progress for this item")
	// ErrTooSoon 手动重试过于频繁
	ErrTooSoon = errors.New("please wait a moment before generating again")
)

// Snapshot 槽位状态的只读副本
type Snapshot struct {
	State  State
	Seq    uint64
	Focal  *models.ContentItem
	Report *models.RecommendationReport
	Error  string
}

// Session 一个UI槽位：idle -> loading -> {success | error} -> idle
// 每次请求带递增序号，只接受最新序号的结果；失败时保留上一次成功的报告
type Session struct {
	mu       sync.Mutex
	state    State
	seq      uint64
	focal    *models.ContentItem
	report   *models.RecommendationReport
	errMsg   string
	limiter  *rate.Limiter
	lastUsed time.Time
	now      func() time.Time
}

// NewSession retryInterval 为同一槽位两次生成之间的最小间隔
func NewSession(retryInterval time.Duration) *Session {
	limit := rate.Inf
	if retryInterval > 0 {
		limit = rate.Every(retryInterval)
	}
	return &Session{
		state:    StateIdle,
		limiter:  rate.NewLimiter(limit, 1),
		lastUsed: time.Now(),
		now:      time.Now,
	}
}

// Focus 切换焦点内容；切换后进行中的请求结果会被丢弃，重试限流只针对同一焦点
func (s *Session) Focus(item models.ContentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if s.focal != nil && s.focal.ContentType == item.ContentType && s.focal.ID == item.ID {
		return
	}

	focal := item
	s.focal = &focal
	s.seq++
	s.state = StateIdle
	s.report = nil
	s.errMsg = ""
	s.limiter = rate.NewLimiter(s.limiter.Limit(), 1)
}

// Begin 进入loading状态并返回本次请求的序号
func (s *Session) Begin() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if s.state == StateLoading {
		return 0, ErrBusy
	}
	if !s.limiter.AllowN(s.now(), 1) {
		return 0, ErrTooSoon
	}

	s.seq++
	s.state = StateLoading
	s.errMsg = ""
	return s.seq, nil
}

// Complete 写入请求结果，序号不是最新时丢弃并返回false
func (s *Session) Complete(seq uint64, report *models.RecommendationReport, errMsg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq || s.state != StateLoading {
		return false
	}

	s.touch()
	if errMsg != "" || report == nil {
		if errMsg == "" {
			errMsg = "no report was produced"
		}
		s.state = StateError
		s.errMsg = errMsg
		return true
	}

	s.state = StateSuccess
	s.report = report
	return true
}

// Dismiss 关闭成功或错误提示，回到idle，保留最近一次成功的报告
func (s *Session) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if s.state == StateSuccess || s.state == StateError {
		s.state = StateIdle
		s.errMsg = ""
	}
}

// Snapshot 当前状态
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		State:  s.state,
		Seq:    s.seq,
		Focal:  s.focal,
		Report: s.report,
		Error:  s.errMsg,
	}
}

// IdleSince 最后一次使用的时间
func (s *Session) IdleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}
