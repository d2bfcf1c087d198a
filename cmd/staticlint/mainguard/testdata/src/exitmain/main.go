package main

import "os"

func main() {
	defer func() {
		os.Exit(2)
	}()

	if len(os.Args) > 3 {
		os.Exit(1) // want "вызов os.Exit в функции main запрещён"
	}
	stop()
}

func stop() {
	os.Exit(0)
}
