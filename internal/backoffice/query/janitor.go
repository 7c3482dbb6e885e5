package query

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Pruner interface {
	Prune() int
}

// StartJanitor agenda a limpeza das entradas expiradas do store em memória
func StartJanitor(schedule string, p Pruner, log *zap.Logger) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if n := p.Prune(); n > 0 {
			log.Debug("query cache pruned", zap.Int("entries", n))
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
