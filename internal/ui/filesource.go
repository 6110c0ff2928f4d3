package ui

import (
	"context"
	"errors"

	"github.com/maxence-charriere/go-app/v10/pkg/app"
)

var errFileRead = errors.New("could not read file")

// fileSource encodes a browser File as a data URI using FileReader.
type fileSource struct {
	file app.Value
}

func (f fileSource) Encode(ctx context.Context) (string, error) {
	type result struct {
		uri string
		err error
	}
	done := make(chan result, 1)

	reader := app.Window().Get("FileReader").New()
	onLoad := app.FuncOf(func(this app.Value, args []app.Value) any {
		done <- result{uri: reader.Get("result").String()}
		return nil
	})
	defer onLoad.Release()
	onError := app.FuncOf(func(this app.Value, args []app.Value) any {
		done <- result{err: errFileRead}
		return nil
	})
	defer onError.Release()

	reader.Set("onload", onLoad)
	reader.Set("onerror", onError)
	reader.Call("readAsDataURL", f.file)

	select {
	case <-ctx.Done():
		reader.Call("abort")
		return "", ctx.Err()
	case r := <-done:
		return r.uri, r.err
	}
}
