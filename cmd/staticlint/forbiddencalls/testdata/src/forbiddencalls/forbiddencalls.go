package forbiddencalls

import (
	"fmt"
	"log"
	"os"
)

func SomePanicFunction() {
	panic("this is forbidden") // want "panic is forbidden"
}

func SomeLogFatalFunction() {
	log.Fatal("this is forbidden") // want "log.Fatal is forbidden outside main function"
}

func SomeOsExitFunction() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func FmtPrinting() {
	fmt.Println("debug output") // want "fmt.Println is forbidden, use zerolog"
	fmt.Printf("value: %d", 42) // want "fmt.Printf is forbidden, use zerolog"
	_ = fmt.Sprintf("ok: %d", 42)
}

func MultipleCallsFunction() {
	panic("panic 1")   // want "panic is forbidden"
	log.Fatal("fatal") // want "log.Fatal is forbidden outside main function"
	os.Exit(0)         // want "os.Exit is forbidden outside main function"
}
