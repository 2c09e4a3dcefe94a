package bundle

import (
	"bytes"
	"context"
	"io"
	"path"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/uicontract/source"
)

// Writer persists bundle documents to an afs destination or a stream
type Writer struct {
	fs     afs.Service
	format Format
	stream io.Writer
}

// NewWriter creates a writer; documents go to stream when no destination is given
func NewWriter(fs afs.Service, format Format, stream io.Writer) *Writer {
	if fs == nil {
		fs = afs.New()
	}
	return &Writer{fs: fs, format: format, stream: stream}
}

// Write emits result documents. With an empty destination the whole result is encoded to the stream,
// otherwise each document is uploaded under destination and the written URLs are returned.
func (w *Writer) Write(ctx context.Context, destination string, result *Result) ([]string, error) {
	if destination == "" {
		var document interface{} = result.Multi
		if result.Single != nil {
			document = result.Single
		}
		data, err := Encode(document, w.format)
		if err != nil {
			return nil, err
		}
		_, err = w.stream.Write(data)
		return nil, err
	}
	if result.Single != nil {
		location := joinURL(destination, OutputPath(result.Single.EntryID)+".bundle"+w.format.Ext())
		return []string{location}, w.upload(ctx, location, result.Single)
	}
	var written []string
	for _, folder := range result.Multi.Project.Folders {
		for _, folderBundle := range result.Multi.Folders[folder] {
			location := joinURL(destination, FolderFile(folder, w.format))
			if err := w.upload(ctx, location, folderBundle); err != nil {
				return written, err
			}
			written = append(written, location)
		}
	}
	location := joinURL(destination, "project.bundle"+w.format.Ext())
	if err := w.upload(ctx, location, result.Multi.Project); err != nil {
		return written, err
	}
	return append(written, location), nil
}

// Output path markers for absolute and parent segments
const (
	absoluteSegment = "_abs"
	parentSegment   = "__"
)

// FolderFile returns the relative file name of a folder bundle
func FolderFile(folder string, format Format) string {
	name := "folder.bundle" + format.Ext()
	if folder == source.RootFolder {
		return name
	}
	return path.Join(OutputPath(folder), name)
}

// OutputPath maps a unit relative location to a path confined to the destination:
// an absolute location is nested under "_abs" and ".." segments become "__"
func OutputPath(location string) string {
	location = strings.ReplaceAll(location, "\\", "/")
	var segments []string
	if strings.HasPrefix(location, "/") {
		segments = append(segments, absoluteSegment)
	}
	for _, segment := range strings.Split(location, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			segment = parentSegment
		}
		segments = append(segments, segment)
	}
	return strings.Join(segments, "/")
}

func (w *Writer) upload(ctx context.Context, location string, document interface{}) error {
	data, err := Encode(document, w.format)
	if err != nil {
		return err
	}
	if err = w.fs.Upload(ctx, location, 0o644, bytes.NewReader(data)); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"url": location, "bytes": len(data)}).Debug("wrote bundle")
	return nil
}

func joinURL(baseURL string, elements ...string) string {
	if strings.Contains(baseURL, "://") {
		return url.Join(baseURL, elements...)
	}
	return path.Join(append([]string{baseURL}, elements...)...)
}
