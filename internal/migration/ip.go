package migration

import (
	"context"

	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/d42"
	"github.com/osanchez42/Racktables-to-Device42-Migration/internal/mapper"
)

type subnetsStage struct{}

func (subnetsStage) Name() string { return StageSubnets }

func (subnetsStage) Run(ctx context.Context, s *State) error {
	networks, err := s.source.Networks(ctx)
	if err != nil {
		return err
	}

	for _, n := range networks {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageSubnets, Entity: d42.EntitySubnet, SourceID: n.ID, Name: n.Name}
		if _, ok := s.upload(ctx, o, s.sink.PostSubnet, mapper.SubnetPayload(n)); !ok {
			continue
		}
		if !s.opts.CreateAvailableIPs {
			continue
		}

		err := mapper.EachAddress(n, func(ip string) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			o := Outcome{Stage: StageSubnets, Entity: d42.EntityIP, SourceID: n.ID, Name: ip}
			s.upload(ctx, o, s.sink.PostIP, mapper.AvailableIPPayload(ip, n))
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

type addressesStage struct{}

func (addressesStage) Name() string { return StageAddresses }

func (addressesStage) Run(ctx context.Context, s *State) error {
	addresses, err := s.source.Addresses(ctx)
	if err != nil {
		return err
	}

	for _, a := range addresses {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageAddresses, Entity: d42.EntityIP, SourceID: int64(a.IP), Name: mapper.IPv4(a.IP)}
		s.upload(ctx, o, s.sink.PostIP, mapper.AddressPayload(a))
	}
	return nil
}

type allocationsStage struct{}

func (allocationsStage) Name() string { return StageAllocations }

func (allocationsStage) Run(ctx context.Context, s *State) error {
	allocations, err := s.source.Allocations(ctx)
	if err != nil {
		return err
	}

	for _, a := range allocations {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := Outcome{Stage: StageAllocations, Entity: d42.EntityIP, SourceID: a.ObjectID, Name: mapper.IPv4(a.IP)}
		s.upload(ctx, o, s.sink.PostIP, mapper.AllocationPayload(a))
	}
	return nil
}
