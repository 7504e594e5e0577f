// Package flow определяет протокол агрегатных операций как последовательность
// шагов и два драйвера исполнения: блокирующий и кооперативный. Оба драйвера
// дают одинаковые пред/пост-условия цепочки; различается только модель
// планирования.
package flow

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Step — одна стадия операции: чтение, вычисление с записью или публикация.
// Run получает контекст запроса; ошибка стадии обрывает цепочку.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner исполняет цепочку шагов строго последовательно: вход каждой стадии —
// результат предыдущей.
type Runner interface {
	Execute(ctx context.Context, op string, steps ...Step) error
}

// Serial исполняет все шаги на goroutine вызывающего. Воркер держится до
// завершения цепочки — блокирующая модель.
type Serial struct {
	logger *log.Entry
}

// NewSerial создаёт блокирующий драйвер.
func NewSerial(logger *log.Entry) *Serial {
	if logger == nil {
		logger = log.WithField("component", "flow-serial")
	}
	return &Serial{logger: logger}
}

func (s *Serial) Execute(ctx context.Context, op string, steps ...Step) error {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := step.Run(ctx); err != nil {
			s.logger.WithError(err).WithFields(log.Fields{
				"op":   op,
				"step": step.Name,
			}).Debug("flow step failed")
			return fmt.Errorf("%s/%s: %w", op, step.Name, err)
		}
	}
	return nil
}

// Chain исполняет каждый шаг как продолжение предыдущего на отдельной
// goroutine; goroutine вызывающего не занята между стадиями, итог приходит
// по каналу — кооперативная модель.
//
// Отмена контекста между стадиями бросает остаток цепочки: уже выполненные
// записи остаются, частично завершённые цепочки возможны.
type Chain struct {
	logger *log.Entry
}

// NewChain создаёт кооперативный драйвер.
func NewChain(logger *log.Entry) *Chain {
	if logger == nil {
		logger = log.WithField("component", "flow-chain")
	}
	return &Chain{logger: logger}
}

func (c *Chain) Execute(ctx context.Context, op string, steps ...Step) error {
	done := make(chan error, 1)

	var next func(i int)
	next = func(i int) {
		if i == len(steps) {
			done <- nil
			return
		}
		if err := ctx.Err(); err != nil {
			c.logger.WithFields(log.Fields{
				"op":   op,
				"step": steps[i].Name,
			}).Debug("flow chain abandoned")
			done <- err
			return
		}
		if err := steps[i].Run(ctx); err != nil {
			c.logger.WithError(err).WithFields(log.Fields{
				"op":   op,
				"step": steps[i].Name,
			}).Debug("flow step failed")
			done <- fmt.Errorf("%s/%s: %w", op, steps[i].Name, err)
			return
		}
		go next(i + 1)
	}
	go next(0)

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// Текущая стадия может ещё завершиться, продолжения не стартуют.
		return ctx.Err()
	}
}

var (
	_ Runner = (*Serial)(nil)
	_ Runner = (*Chain)(nil)
)
