package scheduler

import (
	"fmt"
	"sort"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler runs named jobs on six-field (seconds-first) cron expressions.
type Scheduler struct {
	cron    *cron.Cron
	jobs    map[string]cron.EntryID
	funcs   map[string]func()
	jobsMux sync.RWMutex
}

func New() *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithSeconds()),
		jobs:  make(map[string]cron.EntryID),
		funcs: make(map[string]func()),
	}
}

func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Strs("jobs", s.names()).Msg("scheduler started")
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// Add registers job under name, replacing any job already using that name.
func (s *Scheduler) Add(name, spec string, job func()) error {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()

	s.removeLocked(name)

	entryID, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	s.funcs[name] = job
	log.Info().Str("job", name).Str("spec", spec).Msg("job scheduled")
	return nil
}

func (s *Scheduler) remove(name string) {
	s.jobsMux.Lock()
	defer s.jobsMux.Unlock()
	s.removeLocked(name)
}

// removeLocked expects jobsMux to be held.
func (s *Scheduler) removeLocked(name string) {
	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		delete(s.funcs, name)
	}
}

// runNow executes a registered job synchronously, outside its schedule.
func (s *Scheduler) runNow(name string) bool {
	s.jobsMux.RLock()
	job, ok := s.funcs[name]
	s.jobsMux.RUnlock()

	if ok {
		job()
	}
	return ok
}

// names returns the registered job names, sorted.
func (s *Scheduler) names() []string {
	s.jobsMux.RLock()
	defer s.jobsMux.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
