package rpc

import (
	"strings"

	"github.com/powerman/rpc-codec/jsonrpc2"
	"github.com/ybbus/jsonrpc"
	"golang.org/x/net/websocket"
)

// Client calls a ledger RPC method, e.g. Call("clawnch.Stake", StakeArgs{...}, &StakeResult{}).
type Client interface {
	Call(name string, args interface{}, result interface{}) error
}

// NewClient dials a websocket endpoint when url ends in /ws and speaks JSON-RPC
// over plain HTTP otherwise.
func NewClient(url string) (Client, error) {
	if strings.HasSuffix(url, "/ws") {
		return newWSClient(url)
	}
	return newHTTPClient(url), nil
}

//
// --------------------- HTTP client -------------------------
//

type HTTPClient struct {
	*jsonrpc.RPCClient
}

func newHTTPClient(url string) HTTPClient {
	return HTTPClient{jsonrpc.NewRPCClient(url)}
}

func (c HTTPClient) Call(name string, args interface{}, result interface{}) error {
	res, err := c.RPCClient.Call(name, args)
	if err != nil {
		return err
	}
	if res.Error != nil {
		return res.Error
	}
	return res.GetObject(result)
}

//
// --------------------- WebSocket client -------------------------
//

type WSClient struct {
	*jsonrpc2.Client
	ws  *websocket.Conn
	url string
}

func newWSClient(url string) (*WSClient, error) {
	ws, err := websocket.Dial(url, "", url)
	if err != nil {
		return nil, err
	}
	return &WSClient{
		url:    url,
		ws:     ws,
		Client: jsonrpc2.NewClient(ws),
	}, nil
}

func (c *WSClient) Call(name string, args interface{}, result interface{}) error {
	err := c.Client.Call(name, args, result)
	if err != nil && err.Error() == "connection is shut down" {
		c.ws, err = websocket.Dial(c.url, "", c.url)
		if err != nil {
			return err
		}
		c.Client = jsonrpc2.NewClient(c.ws)
		return c.Client.Call(name, args, result)
	}
	return err
}
