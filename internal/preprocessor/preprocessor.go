package preprocessor

import (
	"regexp"
	"strings"
)

// ---------------- Preprocessor ----------------

// Process flattens a template made of len(values)+1 literal segments with a
// value between each pair. #if and #elif take the value that immediately
// follows them as their selector; every other value is interpolated as text.
func Process(segments []string, values []any) (string, error) {
	if len(segments) != len(values)+1 {
		return "", &DirectiveError{Kind: ErrArity, Segment: -1, Offset: -1,
			Detail: arityDetail(len(segments), len(values))}
	}

	root := newCondBlock(true)
	root.acceptsMore = false // no top level #elif/#else

	cond := newCondStack(root)

	for i, seg := range segments {
		lastIndex := 0
		valueConsumed := false

		for _, d := range scanDirectives(seg) {
			cond.Current().appendText(seg[lastIndex:d.Start])

			switch d.Name {
			case "if":
				if d.End != len(seg) || i >= len(values) {
					return "", cond.errorAt(ErrMalformedDirective, d, i)
				}
				valueConsumed = true
				cond.Push(newCondBlock(values[i]), d, i)

			case "elif":
				if d.End != len(seg) || i >= len(values) {
					return "", cond.errorAt(ErrMalformedDirective, d, i)
				}
				valueConsumed = true
				if err := cond.Current().addBranch(d.Name, values[i]); err != nil {
					return "", cond.errorAt(err, d, i)
				}

			case "else":
				if err := cond.Current().addBranch(d.Name, true); err != nil {
					return "", cond.errorAt(err, d, i)
				}
				cond.Current().appendText(d.Trailing)

			case "endif":
				if cond.Depth() == 0 {
					return "", cond.errorAt(ErrUnmatchedEndif, d, i)
				}
				result := cond.Current().resolve()
				cond.Pop()
				cond.Current().appendText(result, d.Trailing)

			default:
				// Not ours, emit it back unchanged.
				cond.Current().appendText(d.Text(seg))
			}

			lastIndex = d.End
		}

		if lastIndex != len(seg) {
			cond.Current().appendText(seg[lastIndex:])
		}

		if !valueConsumed && i < len(values) {
			cond.Current().appendText(Stringify(values[i]))
		}
	}

	if cond.Depth() != 0 {
		return "", cond.unclosedError()
	}

	return root.resolve(), nil
}

// ---------------- Scanner ----------------

// blank is the ECMAScript whitespace set; RE2's \s lacks \v and the
// Unicode spaces.
const blank = `\t\n\v\f\r\p{Z}\x{FEFF}`

var directiveRe = regexp.MustCompile(`#([^` + blank + `]*)([` + blank + `]*)`)

// directive is a single '#token' match inside a literal segment.
type directive struct {
	Name     string // token following '#', possibly empty
	Trailing string // whitespace run directly after the token
	Start    int
	End      int
}

// Text returns the full matched text, including trailing whitespace.
func (d directive) Text(seg string) string { return seg[d.Start:d.End] }

func scanDirectives(seg string) []directive {
	matches := directiveRe.FindAllStringSubmatchIndex(seg, -1)
	if len(matches) == 0 {
		return nil
	}
	out := make([]directive, 0, len(matches))
	for _, m := range matches {
		out = append(out, directive{
			Name:     seg[m[2]:m[3]],
			Trailing: seg[m[4]:m[5]],
			Start:    m[0],
			End:      m[1],
		})
	}
	return out
}

// ---------------- Conditionals ----------------

type branch struct {
	selected bool
	text     strings.Builder
}

// condBlock is one #if ... #endif region.
type condBlock struct {
	branches    []*branch
	acceptsMore bool
}

func newCondBlock(expr any) *condBlock {
	c := &condBlock{acceptsMore: true}
	c.branches = append(c.branches, &branch{selected: Truthy(expr)})
	return c
}

func (c *condBlock) addBranch(kind string, expr any) error {
	if !c.acceptsMore {
		return ErrDirectiveSequence
	}
	c.acceptsMore = kind == "elif"
	c.branches = append(c.branches, &branch{selected: Truthy(expr)})
	return nil
}

func (c *condBlock) appendText(strs ...string) {
	b := c.branches[len(c.branches)-1]
	for _, s := range strs {
		b.text.WriteString(s)
	}
}

// resolve returns the text of the first selected branch.
func (c *condBlock) resolve() string {
	for _, b := range c.branches {
		if b.selected {
			return b.text.String()
		}
	}
	return ""
}

type condStack struct {
	// suspended parents; the innermost open block is cur
	stack []condFrame
	cur   *condBlock
}

type condFrame struct {
	block   *condBlock
	segment int // where the child #if was opened
	offset  int
}

func newCondStack(root *condBlock) *condStack { return &condStack{cur: root} }
func (c *condStack) Depth() int               { return len(c.stack) }
func (c *condStack) Current() *condBlock      { return c.cur }

func (c *condStack) Push(child *condBlock, d directive, segment int) {
	c.stack = append(c.stack, condFrame{
		block:   c.cur,
		segment: segment,
		offset:  d.Start,
	})
	c.cur = child
}

func (c *condStack) Pop() {
	if len(c.stack) == 0 {
		return
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.cur = top.block
}

func (c *condStack) errorAt(kind error, d directive, segment int) error {
	return &DirectiveError{
		Kind:      kind,
		Directive: "#" + d.Name,
		Segment:   segment,
		Offset:    d.Start,
		Depth:     len(c.stack),
	}
}

func (c *condStack) unclosedError() error {
	top := c.stack[len(c.stack)-1]
	return &DirectiveError{
		Kind:      ErrMismatchedNesting,
		Directive: "#if",
		Segment:   top.segment,
		Offset:    top.offset,
		Depth:     len(c.stack),
	}
}
