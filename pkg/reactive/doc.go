// Package reactive provides the change-notification channel that element
// models are built from.
//
// A Signal[T] holds one observable field. Subscribers register with
// OnChange and are called synchronously, in subscription order, from inside
// the Set call that changed the value:
//
//	visible := reactive.NewSignal(true)
//	sub := visible.OnChange(func(old, new bool) {
//	    fmt.Println("visible:", old, "->", new)
//	})
//	visible.Set(false) // prints before Set returns
//	sub.Cancel()
//
// Setting a value equal to the current one does not notify. Equality uses
// == for basic types and reflect.DeepEqual otherwise, and can be overridden
// with WithEquals.
package reactive
