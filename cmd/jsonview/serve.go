package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charlievieth/jsonview"
	"github.com/gin-gonic/gin"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// maxRenderBody is the largest document accepted by POST /render.
const maxRenderBody = 32 << 20

const fallbackHeader = "X-Jsonview-Error"

type server struct {
	f     *jsonview.Formatter
	files []string
}

// newRouter returns the routes of the preview server:
//
//	GET  /          list of files
//	GET  /view/:id  a file rendered as a page
//	POST /render    the request body rendered as a page (?fragment=1 for
//	                the <pre> block only)
func newRouter(f *jsonview.Formatter, files []string, logw io.Writer) *gin.Engine {
	s := &server{f: f, files: files}
	r := gin.New()
	if logw != nil {
		r.Use(gin.LoggerWithWriter(logw))
	}
	r.Use(gin.Recovery())
	r.GET("/", s.index)
	r.GET("/view/:id", s.view)
	r.POST("/render", s.render)
	return r
}

func (s *server) page(c *gin.Context, title, body string) {
	page, err := jsonview.Page(title, body)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *server) index(c *gin.Context) {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for i, name := range s.files {
		fmt.Fprintf(&b, "<li><a href=\"/view/%d\">%s</a></li>\n", i, jsonview.EncodeHTML(name))
	}
	b.WriteString("</ul>")
	s.page(c, "jsonview", b.String())
}

func (s *server) view(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 || id >= len(s.files) {
		c.String(http.StatusNotFound, "no such file: %s", c.Param("id"))
		return
	}
	name := s.files[id]
	data, err := os.ReadFile(name)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	body, err := s.f.Render(data)
	if err != nil {
		c.Header(fallbackHeader, err.Error())
	}
	s.page(c, filepath.Base(name), body)
}

func (s *server) render(c *gin.Context) {
	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRenderBody))
	if err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			c.String(http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	body, err := s.f.Render(data)
	if err != nil {
		c.Header(fallbackHeader, err.Error())
	}
	if c.Query("fragment") != "" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
		return
	}
	s.page(c, "jsonview", body)
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

// shutdownOnDone waits for ctx to be done and then shuts srv down,
// giving open requests timeout to finish.
func shutdownOnDone(ctx context.Context, srv shutdowner, errw io.Writer, timeout time.Duration) {
	<-ctx.Done()
	sctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		printWarning(errw, "shutdown", err)
	}
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	var openBrowser bool
	var quiet bool
	cmd := &cobra.Command{
		Use:   "serve [flags] [file]...",
		Short: "Serve rendered JSON files over HTTP",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := opts.config()
			if err != nil {
				return err
			}
			f, err := jsonview.NewFormatter(conf)
			if err != nil {
				return err
			}
			for _, name := range args {
				if _, err := os.Stat(name); err != nil {
					return err
				}
			}

			gin.SetMode(gin.ReleaseMode)
			errw := cmd.ErrOrStderr()
			var logw io.Writer
			if !quiet {
				logw = errw
			}
			srv := &http.Server{
				Handler:           newRouter(f, args, logw),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			url := "http://" + ln.Addr().String() + "/"
			fmt.Fprintf(errw, "serving on %s\n", url)
			if openBrowser {
				if err := open.Run(url); err != nil {
					printWarning(errw, "open", err)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go shutdownOnDone(ctx, srv, errw, 5*time.Second)

			if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&addr, "addr", "127.0.0.1:8080", "Address to listen on.")
	flags.BoolVar(&openBrowser, "open", false, "Open the index in a web browser.")
	flags.BoolVarP(&quiet, "quiet", "q", false, "Do not log requests.")
	return cmd
}
