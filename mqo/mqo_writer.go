package mqo

import (
	"archive/zip"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// RewriteIncludeXml copies an mqo document, pointing its IncludeXml line at mqxName.
// The rest of the document is copied byte for byte.
func RewriteIncludeXml(r io.Reader, ww io.Writer, mqxName string) error {
	br := bufio.NewReader(r)
	w := bufio.NewWriter(ww)
	include := []byte("IncludeXml")
	replaced := false
	for {
		line, err := br.ReadBytes('\n')
		if len(line) > 0 {
			if !replaced && bytes.HasPrefix(bytes.TrimSpace(line), include) {
				eol := "\n"
				if bytes.HasSuffix(line, []byte("\r\n")) {
					eol = "\r\n"
				}
				fmt.Fprintf(w, "IncludeXml \"%v\"%v", mqxName, eol)
				replaced = true
			} else if !replaced && bytes.HasPrefix(line, []byte("Eof")) {
				fmt.Fprintf(w, "IncludeXml \"%v\"\n", mqxName)
				replaced = true
				w.Write(line)
			} else {
				w.Write(line)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return w.Flush()
}

// CopyMQO writes a copy of the mqo file src to dst that includes mqxName.
func CopyMQO(src, dst, mqxName string) error {
	r, err := os.Open(src)
	if err != nil {
		return err
	}
	defer r.Close()
	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	if err := RewriteIncludeXml(r, w, mqxName); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// SaveMQOZ writes a copy of the mqoz archive src to dst with the plugins of doc.
// Other entries are copied as is.
func SaveMQOZ(doc *Document, src, dst string) error {
	z, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer z.Close()

	w, err := os.Create(dst)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(w)
	if err := writeMQOZ(doc, &z.Reader, zw); err != nil {
		zw.Close()
		w.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func writeMQOZ(doc *Document, z *zip.Reader, zw *zip.Writer) error {
	var mqoName string
	for _, f := range z.File {
		if strings.HasSuffix(f.Name, ".mqo") {
			mqoName = f.Name
			break
		}
	}
	if mqoName == "" {
		return os.ErrNotExist
	}
	mqxName := strings.TrimSuffix(mqoName, ".mqo") + ".mqx"

	for _, f := range z.File {
		if f.Name == mqxName || f.Name == doc.IncludeXml {
			continue
		}
		r, err := f.Open()
		if err != nil {
			return err
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method, Modified: f.Modified})
		if err != nil {
			r.Close()
			return err
		}
		if f.Name == mqoName {
			err = RewriteIncludeXml(r, fw, mqxName)
		} else {
			_, err = io.Copy(fw, r)
		}
		r.Close()
		if err != nil {
			return err
		}
	}

	fw, err := zw.Create(mqxName)
	if err != nil {
		return err
	}
	return WriteMQX(doc, fw, mqoName)
}
