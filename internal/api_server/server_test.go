package apiserver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"

	api "github.com/kubev2v/qpcr-planner/api/v1alpha1"
	apiserver "github.com/kubev2v/qpcr-planner/internal/api_server"
	"github.com/kubev2v/qpcr-planner/internal/config"
	"github.com/kubev2v/qpcr-planner/internal/service"
	"github.com/kubev2v/qpcr-planner/pkg/metrics"
)

const document = `{
  "samples": {"targets": ["geneA", "geneB"], "repeat": 3, "groups": ["ctrl", "treat"]},
  "recipe": {"mix": 10, "primers": 1, "cDNA": 2, "water": 5},
  "primers": {"forward": {"name": "fwd", "concentration": 10}, "reverse": {"name": "rev", "concentration": 10}}
}`

func newConfig() *config.Config {
	cfg, err := config.New()
	Expect(err).To(BeNil())
	return cfg
}

var _ = Describe("api server", func() {
	var (
		registry *prometheus.Registry
		handler  http.Handler
	)

	BeforeEach(func() {
		registry = prometheus.NewRegistry()
		srv := apiserver.New(newConfig(), nil, service.NewPlannerService(), registry)
		handler = srv.Handler()
	})

	Context("routes", func() {
		It("serves the health check", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))
		})

		It("computes a plan", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/calculations", strings.NewReader(document)))
			Expect(rec.Code).To(Equal(http.StatusOK))

			var result api.CalculationResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(Succeed())
			Expect(result.TotalReactions).To(Equal(12))
			Expect(result.MasterMix.TotalVolume).To(Equal(204.0))
			Expect(rec.Header().Get("X-Request-Id")).ToNot(BeEmpty())
		})

		It("keeps the caller's request id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/greeting", nil)
			req.Header.Set("X-Request-Id", "abc-123")
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
			var apiErr api.Error
			Expect(json.Unmarshal(rec.Body.Bytes(), &apiErr)).To(Succeed())
			Expect(apiErr.RequestId).ToNot(BeNil())
			Expect(*apiErr.RequestId).To(Equal("abc-123"))
		})

		It("answers cors preflight requests", func() {
			req := httptest.NewRequest(http.MethodOptions, "/api/v1/calculations", nil)
			req.Header.Set("Origin", "https://lab.example")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			Expect(rec.Header().Get("Access-Control-Allow-Origin")).To(Equal("*"))
		})

		It("returns 404 for unknown routes", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil))
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})

	Context("metrics", func() {
		It("records requests by route pattern", func() {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))
			Expect(rec.Code).To(Equal(http.StatusOK))

			families, err := registry.Gather()
			Expect(err).To(BeNil())

			names := []string{}
			for _, family := range families {
				names = append(names, family.GetName())
			}
			Expect(names).To(ContainElement(metrics.RequestsCollectorName))
		})
	})

	Context("Run", func() {
		It("serves until the context is cancelled", func() {
			listener, err := net.Listen("tcp", "127.0.0.1:0")
			Expect(err).To(BeNil())

			srv := apiserver.New(newConfig(), listener, service.NewPlannerService(), prometheus.NewRegistry())
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- srv.Run(ctx) }()

			url := fmt.Sprintf("http://%s/api/v1/greeting?name=Ada", listener.Addr().String())
			Eventually(func() (int, error) {
				resp, err := http.Get(url)
				if err != nil {
					return 0, err
				}
				defer resp.Body.Close()
				_, _ = io.Copy(io.Discard, resp.Body)
				return resp.StatusCode, nil
			}, 5*time.Second, 50*time.Millisecond).Should(Equal(http.StatusOK))

			cancel()
			Eventually(done, 10*time.Second).Should(Receive(BeNil()))
		})
	})
})

var _ = Describe("metrics server", func() {
	It("serves the prometheus endpoint", func() {
		listener, err := net.Listen("tcp", "127.0.0.1:0")
		Expect(err).To(BeNil())

		srv := apiserver.NewMetricServer(listener.Addr().String(), listener)
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx) }()

		url := fmt.Sprintf("http://%s/metrics", listener.Addr().String())
		Eventually(func() (string, error) {
			resp, err := http.Get(url)
			if err != nil {
				return "", err
			}
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			return string(body), err
		}, 5*time.Second, 50*time.Millisecond).Should(ContainSubstring("qpcr_planner"))

		cancel()
		Eventually(done, 10*time.Second).Should(Receive(BeNil()))
	})
})
