package main

import "github.com/dverdugo/message-app/internal/server"

func main() {
	srv := server.New()
	srv.Run()
}
