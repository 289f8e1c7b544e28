package mqo

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/scanner"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Parser for mqo file.
// Only objects and vertex positions are read. Bone weights are loaded from the included mqx file.
type Parser struct {
	name string
	r    io.Reader
	s    scanner.Scanner
	Open func(name string) (io.ReadCloser, error)
}

// NewParser returns new parser.
func NewParser(r io.Reader, path string) *Parser {
	p := &Parser{
		name: path,
		r:    r,
	}
	if path != "" {
		p.s.Filename = path
		p.Open = func(name string) (io.ReadCloser, error) {
			return os.Open(filepath.Join(filepath.Dir(path), name))
		}
	}
	return p
}

type backSlashReplacer struct{ transform.NopResetter }

func (backSlashReplacer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	n := copy(dst, src)
	for i := 0; i < n; i++ {
		if dst[i] == '\\' {
			dst[i] = '/'
		}
	}
	if n < len(src) {
		err = transform.ErrShortDst
	}
	return n, n, err
}

func (p *Parser) readFloat() float32 {
	tok := p.s.Scan()
	var s float32 = 1
	if p.s.TokenText() == "-" {
		tok = p.s.Scan()
		s = -1
	}
	if tok != scanner.Int && tok != scanner.Float {
		return 0
	}
	n, _ := strconv.ParseFloat(p.s.TokenText(), 32)
	return float32(n) * s
}

func (p *Parser) readInt() int {
	tok := p.s.Scan()
	if tok != scanner.Int {
		log.Printf("  Invalid num  %s\n", p.s.TokenText())
		return 0
	}
	n, _ := strconv.Atoi(p.s.TokenText())
	return n
}

func (p *Parser) readStr() string {
	p.s.Scan()
	return strings.Trim(p.s.TokenText(), "\"")
}

func (p *Parser) skipN(n int) {
	for i := 0; i < n; i++ {
		p.s.Scan()
	}
}

func (p *Parser) skip(t string) {
	p.s.Scan()
	if p.s.TokenText() != t {
		log.Printf("  Invalid token  %s != %s\n", p.s.TokenText(), t)
	}
}

func (p *Parser) skipBlock() {
	p.s.Error = func(s *scanner.Scanner, msg string) {
		s.ErrorCount--
	}
	defer func() { p.s.Error = nil }()
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if p.s.TokenText() == "}" {
			return
		}
		if p.s.TokenText() == "{" {
			p.skipBlock()
		}
	}
}

func (p *Parser) procArray(init, elem func(n int)) {
	n := p.readInt()
	p.skip("{")
	init(n)
	for i := 0; i < n; i++ {
		elem(i)
	}
	p.skip("}")
}

func (p *Parser) procObj(handlers map[string]func()) {
	p.skip("{")
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if p.s.TokenText() == "}" {
			break
		}
		if p.s.TokenText() == "{" {
			p.skipBlock()
		}
		if handler, ok := handlers[p.s.TokenText()]; ok {
			handler()
		}
	}
}

func (p *Parser) readObject() *Object {
	o := NewObject(p.readStr())

	p.procObj(map[string]func(){
		"uid":     func() { o.UID = p.readInt() },
		"depth":   func() { o.Depth = p.readInt() },
		"visible": func() { o.Visible = p.readInt() > 0 },
		"locking": func() { o.Locked = p.readInt() > 0 },
		"vertex": func() {
			p.procArray(func(n int) {
				o.Vertexes = make([]*Vector3, n)
			}, func(i int) {
				o.Vertexes[i] = &Vector3{X: p.readFloat(), Y: p.readFloat(), Z: p.readFloat()}
			})
		},
		"vertexattr": func() {
			p.procObj(map[string]func(){
				"uid": func() {
					p.skip("{")
					for i := 0; i < len(o.Vertexes); i++ {
						o.VertexByUID[p.readInt()] = i
					}
					p.skip("}")
				},
			})
		},
	})
	return o
}

func (p *Parser) detectCodePage() {
	buf := make([]byte, 128)
	n, _ := io.ReadFull(p.r, buf)
	p.r = io.MultiReader(bytes.NewReader(buf[:n]), p.r)
	if matched, _ := regexp.Match(`CodePage\s+utf8`, buf[:n]); !matched {
		p.r = transform.NewReader(p.r, transform.Chain(japanese.ShiftJIS.NewDecoder(), backSlashReplacer{}))
	} else {
		p.r = transform.NewReader(p.r, backSlashReplacer{})
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.detectCodePage()
	p.s.Init(p.r)
	if p.name != "" {
		p.s.Filename = p.name
	}

	doc := NewDocument()
	for tok := p.s.Scan(); tok != scanner.EOF; tok = p.s.Scan() {
		if tok != scanner.Ident {
			continue
		}
		switch p.s.TokenText() {
		case "Object":
			doc.Objects = append(doc.Objects, p.readObject())
		case "Thumbnail":
			p.skipN(5)
			p.skip("{")
			p.skipBlock()
		case "IncludeXml":
			doc.IncludeXml = p.readStr()
		}
		if p.s.TokenText() == "Eof" {
			break
		}
	}
	if p.s.ErrorCount > 0 {
		return doc, fmt.Errorf("Parse error (count:%d)", p.s.ErrorCount)
	}
	if doc.IncludeXml != "" && p.Open != nil {
		r, err := p.Open(doc.IncludeXml)
		if err != nil {
			log.Println("IncludeXml not found:", doc.IncludeXml, err)
			return doc, nil
		}
		defer r.Close()
		mqx, err := ReadMQX(r)
		if err != nil {
			return doc, fmt.Errorf("%v: %w", doc.IncludeXml, err)
		}
		doc.Plugins = mqx.Plugins
		for _, p := range doc.Plugins {
			p.PostDeserialize(doc)
		}
	}
	return doc, nil
}

func Parse(r io.Reader, path string) (*Document, error) {
	return NewParser(r, path).Parse()
}

func LoadMQOZ(path string) (*Document, error) {
	z, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer z.Close()
	for _, f := range z.File {
		if strings.HasSuffix(f.Name, ".mqo") {
			r, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer r.Close()
			parser := NewParser(r, path)
			parser.Open = func(name string) (io.ReadCloser, error) {
				for _, f := range z.File {
					if f.Name == name {
						return f.Open()
					}
				}
				return nil, os.ErrNotExist
			}
			return parser.Parse()
		}
	}
	return nil, os.ErrNotExist
}

func Load(path string) (*Document, error) {
	if strings.HasSuffix(strings.ToLower(path), ".mqoz") {
		return LoadMQOZ(path)
	}
	r, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return Parse(r, path)
}
