package main

import "github.com/nguyenanhtu/realty_backend/cmd"

func main() {
	cmd.Execute()
}
