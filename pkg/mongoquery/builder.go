package mongoquery

import (
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"

	qerrors "github.com/shyam-dasgupta/mongo-query-builder/internal/errors"
	"github.com/shyam-dasgupta/mongo-query-builder/internal/filter"
	"github.com/shyam-dasgupta/mongo-query-builder/internal/search"
)

// Builder accumulates a filter through chained calls. Create one with New;
// the zero value is not usable.
type Builder struct {
	c        *filter.Composer
	compiler *search.Compiler
	log      *slog.Logger

	group      *group
	lastField  *Field
	lastSearch *Search
	err        error
}

// Option configures a Builder.
type Option func(*Builder)

// WithLogger enables debug tracing of folds and merges.
func WithLogger(log *slog.Logger) Option {
	return func(b *Builder) { b.log = log }
}

// WithPatternCache sets the compiled search pattern cache size.
func WithPatternCache(size int) Option {
	return func(b *Builder) { b.compiler = search.NewCompiler(size) }
}

// New creates an empty filter builder.
func New(opts ...Option) *Builder {
	b := &Builder{
		c:        filter.NewComposer(),
		compiler: search.NewCompiler(search.DefaultCacheSize),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.log != nil {
		b.c.SetLogger(b.log)
	}
	return b
}

// Field starts a comparison chain for the named field.
func (b *Builder) Field(name string) *Field {
	f := &Field{b: b, name: name}
	b.lastField = f
	return f
}

// AndField continues with another field. Calling it before any Field call
// is an illegal-state error.
func (b *Builder) AndField(name string) *Field {
	if b.lastField == nil {
		b.fail(qerrors.IllegalStateError("andField called before field"))
		return &Field{b: b, name: name}
	}
	return b.Field(name)
}

// Search starts a full-text search chain for the given text.
func (b *Builder) Search(text string) *Search {
	s := &Search{b: b, text: text}
	b.lastSearch = s
	return s
}

// AndSearch continues with the previous search text and mode, typically to
// apply it to further fields. Calling it before any Search call is an
// illegal-state error.
func (b *Builder) AndSearch() *Search {
	if b.lastSearch == nil {
		b.fail(qerrors.IllegalStateError("andSearch called before search"))
		return &Search{b: b}
	}
	s := &Search{b: b, text: b.lastSearch.text, withinWords: b.lastSearch.withinWords}
	b.lastSearch = s
	return s
}

// Either opens an OR group. Until the group is flushed (by Build or a
// following Either), composition calls accumulate into the group's current
// member; Or finalizes a member and opens the next. Opening a second group
// flushes the first, so two sequential groups become an $and of two $or
// arrays rather than one merged $or.
func (b *Builder) Either() *Builder {
	if b.frozen() {
		return b
	}
	b.flushGroup()
	b.group = newGroup(b.log)
	return b
}

// Or finalizes the current OR group member and opens the next one.
// Calling it outside a group is an illegal-state error.
func (b *Builder) Or() *Builder {
	if b.frozen() {
		return b
	}
	if b.group == nil {
		b.fail(qerrors.IllegalStateError("or called before either"))
		return b
	}
	b.group.closeMember(b.log)
	return b
}

// Build flushes any pending OR group and returns the finished filter.
// A recorded contract violation is returned instead; the filter under
// construction is never partially returned.
func (b *Builder) Build() (bson.M, error) {
	b.flushGroup()
	if b.err != nil {
		return nil, b.err
	}
	return b.c.Query().ToBSON(), nil
}

// Err returns the first recorded contract violation, if any.
func (b *Builder) Err() error { return b.err }

// composer returns the composition target for the next clause: the active
// OR group member when a group is open, the root otherwise.
func (b *Builder) composer() *filter.Composer {
	if b.group != nil {
		return b.group.current
	}
	return b.c
}

func (b *Builder) flushGroup() {
	if b.group == nil {
		return
	}
	g := b.group
	b.group = nil
	g.closeMember(b.log)
	b.c.OrFold(g.members...)
}

// fail records the first error; the builder is frozen from then on.
func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) frozen() bool { return b.err != nil }

// group accumulates OR members, each built through its own composer.
type group struct {
	members []*filter.Expr
	current *filter.Composer
}

func newGroup(log *slog.Logger) *group {
	g := &group{current: filter.NewComposer()}
	if log != nil {
		g.current.SetLogger(log)
	}
	return g
}

// closeMember finalizes the current member if it is non-empty and opens a
// fresh one. Duplicate members are dropped later by OrFold.
func (g *group) closeMember(log *slog.Logger) {
	if !g.current.Empty() {
		g.members = append(g.members, g.current.Query())
	}
	g.current = filter.NewComposer()
	if log != nil {
		g.current.SetLogger(log)
	}
}
