package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	boardnet "MarkBoard/internal/net"
	"MarkBoard/internal/ui"
)

const (
	customURLScheme = "markboard://"
	port            = 8895
)

func main() {
	args := os.Args
	if len(args) > 1 && strings.HasPrefix(args[1], customURLScheme) {
		runClient(args[1])
	} else {
		runHost()
	}
}

func runHost() {
	log.Println("Starting as HOST")
	board := ui.NewBoardWidget()
	host := boardnet.NewHost()

	// Local edits go to every connected peer.
	board.OnStrokesChanged = func(strokes []byte) {
		host.Broadcast(strokes)
	}

	// Peer edits replace the board wholesale.
	host.OnStrokes = func(strokes json.RawMessage) {
		board.ApplyRemote(strokes)
	}

	go func() {
		if err := host.Serve(port); err != nil {
			log.Fatalf("host server: %v", err)
		}
	}()

	if server, err := boardnet.Advertise(port); err != nil {
		log.Printf("mdns advertise failed: %v", err)
	} else {
		defer server.Shutdown()
	}

	hostIP, err := boardnet.OutgoingIP()
	if err != nil {
		hostIP = "127.0.0.1"
	}
	shareLink := fmt.Sprintf("%s%s:%d", customURLScheme, hostIP, port)
	log.Printf("share this board: %s", shareLink)

	ui.RunApp(board, shareLink)
	host.Close()
}

func runClient(link string) {
	log.Println("Starting as CLIENT")
	board := ui.NewBoardWidget()
	go connectToHost(link, board)
	ui.RunApp(board, link)
}

func connectToHost(link string, board *ui.BoardWidget) {
	address := strings.TrimPrefix(link, customURLScheme)
	address = strings.TrimSuffix(address, "/")
	time.Sleep(500 * time.Millisecond) // Give UI time to launch

	client, err := boardnet.Join(address, func(strokes json.RawMessage) {
		board.ApplyRemote(strokes)
	})
	if err != nil {
		log.Printf("connection failed: %v", err)
		return
	}
	log.Println("Connected to host at", address)

	board.OnStrokesChanged = func(strokes []byte) {
		if err := client.Send(strokes); err != nil {
			log.Printf("failed to send strokes: %v", err)
		}
	}
}
