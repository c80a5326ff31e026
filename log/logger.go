// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package log

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Ctx is a map of key/value pairs used to enrich a log line with
// structured context. It mirrors the variadic ctx ...interface{} call
// convention used by the package-level helpers.
type Ctx map[string]interface{}

// toArray flattens a Ctx into the alternating key/value slice the rest
// of the package works with.
func (c Ctx) toArray() []interface{} {
	arr := make([]interface{}, 0, len(c)*2)
	for k, v := range c {
		arr = append(arr, k, v)
	}
	return arr
}

// normalize pads an odd-length context slice with a trailing nil so
// every key always has a matching value.
func normalize(ctx []interface{}) []interface{} {
	if len(ctx)%2 != 0 {
		ctx = append(ctx, nil)
	}
	return ctx
}

type logger struct {
	ctx     []interface{}
	mapPool sync.Pool
}

func (l *logger) New(ctx ...interface{}) Logger {
	child := &logger{
		ctx: append(append([]interface{}{}, l.ctx...), normalize(ctx)...),
		mapPool: sync.Pool{
			New: func() any {
				return map[string]interface{}{}
			},
		},
	}
	return child
}

func (l *logger) Trace(msg string, ctx ...interface{}) { l.write(msg, LvlTrace, ctx, skipLevel) }
func (l *logger) Debug(msg string, ctx ...interface{}) { l.write(msg, LvlDebug, ctx, skipLevel) }
func (l *logger) Info(msg string, ctx ...interface{})  { l.write(msg, LvlInfo, ctx, skipLevel) }
func (l *logger) Warn(msg string, ctx ...interface{})  { l.write(msg, LvlWarn, ctx, skipLevel) }
func (l *logger) Error(msg string, ctx ...interface{}) { l.write(msg, LvlError, ctx, skipLevel) }
func (l *logger) Crit(msg string, ctx ...interface{}) {
	l.write(msg, LvlCrit, ctx, skipLevel)
	os.Exit(1)
}

func (l *logger) write(msg string, lvl Lvl, ctx []interface{}, skip int) {
	all := normalize(ctx)
	fields, ok := l.mapPool.Get().(map[string]interface{})
	if !ok || fields == nil {
		fields = map[string]interface{}{}
	}
	defer func() {
		for k := range fields {
			delete(fields, k)
		}
		l.mapPool.Put(fields)
	}()

	for i := 0; i+1 < len(l.ctx); i += 2 {
		if k, ok := l.ctx[i].(string); ok {
			fields[k] = l.ctx[i+1]
		}
	}
	for i := 0; i+1 < len(all); i += 2 {
		if k, ok := all[i].(string); ok {
			fields[k] = all[i+1]
		}
	}

	entry := terminal.WithFields(logrus.Fields(fields))
	if pc, file, line, ok := runtime.Caller(skip); ok {
		fn := runtime.FuncForPC(pc)
		name := "?"
		if fn != nil {
			name = fn.Name()
		}
		entry = entry.WithField("caller", fmt.Sprintf("%s:%d(%s)", file, line, name))
	}

	switch lvl {
	case LvlTrace:
		entry.Trace(msg)
	case LvlDebug:
		entry.Debug(msg)
	case LvlInfo:
		entry.Info(msg)
	case LvlWarn:
		entry.Warn(msg)
	case LvlError:
		entry.Error(msg)
	case LvlCrit, LvlFatal:
		entry.Error(msg)
	}
}
