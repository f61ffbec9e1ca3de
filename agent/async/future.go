// Package async offers the one-shot primitives the bridge is built on: Future
// for SDK results delivered through findy.Channel and Slot for the callback that
// must be completed exactly once.
package async

import (
	"sync"

	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
)

type State uint32

const (
	empty State = iota
	triggered
	Consumed
)

// Future is the result of one SDK call. The channel is read only once, the
// value is cached for the later reads.
type Future struct {
	On State
	V  interface{}
	ch findy.Channel
	lo sync.Mutex
}

// value returns actual result object from findy.Channel. It blocks until the
// SDK completes the call.
func (f *Future) value() interface{} {
	f.lo.Lock()
	defer f.lo.Unlock()
	if f.On == triggered {
		r := <-f.ch
		f.On = Consumed
		f.V = r
	}

	return f.V
}

func (f *Future) IsEmpty() bool {
	f.lo.Lock()
	defer f.lo.Unlock()
	return f.On == empty
}

func (f *Future) Result() (dtoResult *dto.Result) {
	pseudo := f.value()
	if pseudo != nil {
		r := pseudo.(dto.Result)
		dtoResult = &r
	}
	return
}

// Err returns the error of the SDK call and its SDK code. The code is zero
// when there is no error.
func (f *Future) Err() (code int, err error) {
	r := f.Result()
	if r == nil {
		return 0, nil
	}
	if err = r.Err(); err != nil {
		return r.ErrCode(), err
	}
	return 0, nil
}

// NewFuture changes the existing findy.Channel to a Future.
func NewFuture(ch findy.Channel) *Future {
	f := &Future{}
	f.SetChan(ch)
	return f
}

// NewResolved returns a Future which is already consumed with the data.
func NewResolved(d dto.Data) *Future {
	return &Future{V: dto.Result{Data: d}, On: Consumed}
}

// SetChan sets the existing findy.Channel to this Future.
func (f *Future) SetChan(ch findy.Channel) {
	f.lo.Lock()
	defer f.lo.Unlock()
	if f.On == triggered {
		// previous result is not read yet, drain it that the SDK side won't
		// block if the channel is unbuffered
		<-f.ch
	}
	f.ch = ch
	f.On = triggered
}

// MARK: type helpers for convenience, you could Result().Handle() for example.
//  now we have places for default values per type etc.

func (f *Future) Int() (i int) {
	r := f.Result()
	if r != nil {
		i = r.Handle()
	}
	return
}

func (f *Future) Strs() (s1, s2, s3 string) {
	r := f.Result()
	if r != nil {
		s1 = r.Str1()
		s2 = r.Str2()
		s3 = r.Str3()
	}
	return
}

func (f *Future) Bytes() (b []byte) {
	r := f.Result()
	if r != nil {
		b = r.Bytes()
	}
	return
}

func (f *Future) Str1() string {
	str1, _, _ := f.Strs()
	return str1
}

func (f *Future) Str2() string {
	_, str2, _ := f.Strs()
	return str2
}

// Check waits for the result and returns the SDK failure as the domain's
// Common error. It returns nil when the call succeeded.
func (f *Future) Check(d errcode.Domain) error {
	if code, err := f.Err(); err != nil {
		return d.Common(code, err.Error())
	}
	return nil
}
