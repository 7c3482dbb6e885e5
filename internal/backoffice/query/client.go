package query

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrRowBusy: outra escrita na mesma linha ainda não terminou
var ErrRowBusy = errors.New("row is being modified by another request")

// Hooks recebem os eventos do cache; usados para métricas
type Hooks struct {
	OnHit    func(entity string)
	OnMiss   func(entity string)
	OnFetch  func(entity string, err error)
	OnMutate func(entity, op string, err error)
}

type Options struct {
	TTL          time.Duration // validade de uma leitura no store
	FetchTimeout time.Duration // limite da busca compartilhada, desacoplada do request
}

// Client deduplica leituras por chave, guarda o resultado no Store e invalida
// por prefixo depois de cada escrita bem-sucedida.
//
// Cada entidade tem uma geração; invalidar incrementa a geração e uma busca só
// grava no store se a geração não mudou desde que começou. Assim uma leitura
// iniciada antes de uma escrita nunca sobrescreve o resultado de uma posterior.
type Client struct {
	store Store
	opts  Options
	log   *zap.Logger
	hooks Hooks
	rows  *RowLocks

	sf   singleflight.Group
	mu   sync.Mutex
	gens map[string]uint64
}

func NewClient(store Store, opts Options, log *zap.Logger, hooks Hooks) *Client {
	if opts.TTL <= 0 {
		opts.TTL = 30 * time.Second
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 10 * time.Second
	}
	return &Client{
		store: store,
		opts:  opts,
		log:   log,
		hooks: hooks,
		rows:  NewRowLocks(),
		gens:  make(map[string]uint64),
	}
}

// Result é o estado de uma leitura no momento da renderização
type Result[T any] struct {
	Data    T
	Loading bool
	Err     error
}

func (r Result[T]) Phase() string {
	switch {
	case r.Loading:
		return "loading"
	case r.Err != nil:
		return "error"
	default:
		return "ready"
	}
}

// Fetch espera a leitura terminar (ou o ctx acabar)
func Fetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) Result[T] {
	return Observe(ctx, c, key, 0, fn)
}

// Observe espera no máximo wait; se a busca não terminou, devolve Loading e ela
// segue em background até preencher o cache. wait <= 0 espera até o fim.
func Observe[T any](ctx context.Context, c *Client, key Key, wait time.Duration, fn func(context.Context) (T, error)) Result[T] {
	if v, ok := cached[T](ctx, c, key); ok {
		return Result[T]{Data: v}
	}
	return await[T](ctx, start(ctx, c, key, fn), wait)
}

// Refresh ignora o que está no cache e busca de novo (ainda deduplicado).
// Usado para conferir a versão de uma linha antes de escrever.
func Refresh[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) Result[T] {
	return await[T](ctx, start(ctx, c, key, fn), 0)
}

// Prefetch dispara a busca se a chave não estiver no cache e não espera
func Prefetch[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) {
	if _, ok := cached[T](ctx, c, key); ok {
		return
	}
	start(ctx, c, key, fn)
}

func cached[T any](ctx context.Context, c *Client, key Key) (T, bool) {
	var v T
	skey := key.String()
	b, ok := c.lookup(ctx, key.Entity(), skey)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		c.log.Warn("query cache entry unreadable, refetching", zap.String("key", skey))
		return v, false
	}
	return v, true
}

// start junta-se à busca em andamento para a mesma chave e geração
func start[T any](ctx context.Context, c *Client, key Key, fn func(context.Context) (T, error)) <-chan singleflight.Result {
	entity := key.Entity()
	skey := key.String()
	gen := c.generation(entity)

	return c.sf.DoChan(skey+"#"+strconv.FormatUint(gen, 10), func() (any, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.FetchTimeout)
		defer cancel()

		v, err := fn(fctx)
		if c.hooks.OnFetch != nil {
			c.hooks.OnFetch(entity, err)
		}
		if err != nil {
			return nil, err
		}
		c.storeIfCurrent(fctx, entity, skey, gen, v)
		return v, nil
	})
}

func await[T any](ctx context.Context, ch <-chan singleflight.Result, wait time.Duration) Result[T] {
	var timeout <-chan time.Time
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		timeout = t.C
	}

	select {
	case res := <-ch:
		if res.Err != nil {
			return Result[T]{Err: res.Err}
		}
		v, _ := res.Val.(T)
		return Result[T]{Data: v}
	case <-timeout:
		return Result[T]{Loading: true}
	case <-ctx.Done():
		return Result[T]{Err: ctx.Err()}
	}
}

// Invalidate descarta toda leitura cuja chave começa com algum dos prefixos
func (c *Client) Invalidate(ctx context.Context, prefixes ...Key) error {
	var errs []error
	for _, p := range prefixes {
		c.bump(p.Entity())
		if err := c.store.DeletePrefix(ctx, p.String()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Mutation descreve uma escrita; Row (opcional) ativa a trava por linha
type Mutation struct {
	Entity      string
	Op          string
	Row         string
	Invalidates []Key // vazio = a entidade inteira
}

// Mutate executa fn exatamente uma vez, sem retry. Só invalida se fn der certo.
func (c *Client) Mutate(ctx context.Context, m Mutation, fn func(context.Context) error) error {
	if m.Row != "" {
		release, ok := c.rows.TryAcquire(m.Entity + "/" + m.Row)
		if !ok {
			c.mutated(m, ErrRowBusy)
			return ErrRowBusy
		}
		defer release()
	}

	err := fn(ctx)
	c.mutated(m, err)
	if err != nil {
		return err
	}

	keys := m.Invalidates
	if len(keys) == 0 {
		keys = []Key{NewKey(m.Entity)}
	}
	// a escrita já aconteceu no backend; falha aqui não desfaz nada, só loga
	if ierr := c.Invalidate(ctx, keys...); ierr != nil {
		c.log.Warn("query invalidation failed", zap.String("entity", m.Entity), zap.Error(ierr))
	}
	return nil
}

func (c *Client) mutated(m Mutation, err error) {
	if c.hooks.OnMutate != nil {
		c.hooks.OnMutate(m.Entity, m.Op, err)
	}
	fields := []zap.Field{zap.String("entity", m.Entity), zap.String("op", m.Op), zap.String("row", m.Row)}
	if err != nil {
		c.log.Info("mutation failed", append(fields, zap.Error(err))...)
		return
	}
	c.log.Info("mutation applied", fields...)
}

func (c *Client) lookup(ctx context.Context, entity, skey string) ([]byte, bool) {
	b, ok, err := c.store.Get(ctx, skey)
	if err != nil {
		c.log.Warn("query cache get failed", zap.String("key", skey), zap.Error(err))
		ok = false
	}
	if ok {
		if c.hooks.OnHit != nil {
			c.hooks.OnHit(entity)
		}
		return b, true
	}
	if c.hooks.OnMiss != nil {
		c.hooks.OnMiss(entity)
	}
	return nil, false
}

func (c *Client) storeIfCurrent(ctx context.Context, entity, skey string, gen uint64, v any) {
	if c.generation(entity) != gen {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("query result not cacheable", zap.String("key", skey), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, skey, b, c.opts.TTL); err != nil {
		c.log.Warn("query cache set failed", zap.String("key", skey), zap.Error(err))
		return
	}
	// uma invalidação pode ter ocorrido entre a checagem e o Set; remove só esta chave
	if c.generation(entity) != gen {
		_ = c.store.Delete(ctx, skey)
	}
}

func (c *Client) generation(entity string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[entity]
}

func (c *Client) bump(entity string) {
	c.mu.Lock()
	c.gens[entity]++
	c.mu.Unlock()
}
