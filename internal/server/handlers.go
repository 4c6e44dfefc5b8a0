package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vietdv277/skymap/internal/poller"
	"github.com/vietdv277/skymap/internal/topology"
	"github.com/vietdv277/skymap/pkg/types"
)

type errorResponse struct {
	Error string `json:"error"`
}

type networkRequest struct {
	VPCID string `json:"vpcId"`
}

type topologyResponse struct {
	types.PollResult
	State string `json:"state"`
}

type statusResponse struct {
	State string `json:"state"`
	VPCID string `json:"vpcId,omitempty"`
}

func (s *Server) status() statusResponse {
	return statusResponse{State: s.poller.State().String(), VPCID: s.poller.NetworkID()}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GET /api/instances?vpcId=
func (s *Server) handleInstances(c *gin.Context) {
	vpcID := c.Query("vpcId")
	if vpcID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{poller.ErrNoNetworkID.Error()})
		return
	}

	instances, err := poller.FetchInstances(c.Request.Context(), s.fetcher, vpcID)
	if err != nil {
		zerolog.Ctx(s.ctx).Error().Err(err).Str("vpc_id", vpcID).Msg("Error fetching EC2 instances")
		c.JSON(http.StatusInternalServerError, errorResponse{"Failed to fetch EC2 instances"})
		return
	}
	if instances == nil {
		instances = []types.RawInstance{}
	}

	c.JSON(http.StatusOK, gin.H{"instances": instances})
}

// GET /api/loadbalancers?vpcId= returns only balancers that hold a role
func (s *Server) handleLoadBalancers(c *gin.Context) {
	vpcID := c.Query("vpcId")
	if vpcID == "" {
		c.JSON(http.StatusBadRequest, errorResponse{poller.ErrNoNetworkID.Error()})
		return
	}

	lbs, err := poller.FetchLoadBalancers(c.Request.Context(), s.fetcher, vpcID, s.reporter)
	if err != nil {
		zerolog.Ctx(s.ctx).Error().Err(err).Str("vpc_id", vpcID).Msg("Error fetching ALBs")
		c.JSON(http.StatusInternalServerError, errorResponse{"Failed to fetch ALBs"})
		return
	}

	classified := topology.Classify(s.cfg.Rules, nil, lbs).LoadBalancers
	if classified == nil {
		classified = []types.ClassifiedLoadBalancer{}
	}

	c.JSON(http.StatusOK, gin.H{"loadBalancers": classified})
}

// GET /api/topology returns the last published result
func (s *Server) handleTopology(c *gin.Context) {
	state := s.poller.State()
	result, ok := s.poller.Latest()
	if !ok {
		if state == poller.StateIdle {
			c.JSON(http.StatusNotFound, errorResponse{"no VPC is being watched"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, errorResponse{"topology not yet available"})
		return
	}

	c.JSON(http.StatusOK, topologyResponse{PollResult: result, State: state.String()})
}

// PUT /api/network starts polling a VPC
func (s *Server) handleConfigure(c *gin.Context) {
	var req networkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
		return
	}

	if err := s.poller.Configure(s.ctx, req.VPCID); err != nil {
		if errors.Is(err, poller.ErrNoNetworkID) {
			c.JSON(http.StatusBadRequest, errorResponse{err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, errorResponse{err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, s.status())
}

// DELETE /api/network stops polling and drops the result
func (s *Server) handleClear(c *gin.Context) {
	s.poller.Clear()
	c.JSON(http.StatusOK, s.status())
}

// POST /api/refresh runs a cycle now
func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.poller.Refresh(); err != nil {
		c.JSON(http.StatusConflict, errorResponse{err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, s.status())
}
